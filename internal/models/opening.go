package models

import "time"

// Opening types.
const (
	OpeningFramed   = "framed"
	OpeningThinwall = "thinwall"
)

// Panel types. A frame panel's effective dimensions are derived from its
// sibling panels (or the opening bounds), never from its own stored fields.
const (
	PanelFixed       = "fixed"
	PanelSwingDoor   = "swing_door"
	PanelSlidingDoor = "sliding_door"
	PanelFrame       = "frame"
)

// Opening is one finished product unit (a door/window assembly). The price
// and category cost fields are a cache of the last calculation; they are
// terminal output, never an input to the next calculation.
type Opening struct {
	ID             uint   `gorm:"primaryKey"`
	ProjectID      uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	OpeningType    string `gorm:"size:20;not null;default:'framed'"`
	RoughWidth     float64
	RoughHeight    float64
	FinishedWidth  float64
	FinishedHeight float64
	FinishColor    string `gorm:"size:40"` // blank means mill finish
	Panels         []Panel `gorm:"foreignKey:OpeningID"`

	// Cached price snapshot, replaced wholesale on every recalculation.
	Price               float64
	ExtrusionCost       float64
	HardwareCost        float64
	GlassCost           float64
	PackagingCost       float64
	OtherCost           float64
	StandardOptionCost  float64
	HybridRemainingCost float64
	PriceCalculatedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Panel is one physical leaf of an opening.
type Panel struct {
	ID        uint   `gorm:"primaryKey"`
	OpeningID uint   `gorm:"not null;index"`
	Type      string `gorm:"size:20;not null"`
	Position  int    `gorm:"not null;default:0"`
	Width     float64
	Height    float64
	GlassType string `gorm:"size:40"`
	// Directional metadata for doors.
	SwingDirection   string `gorm:"size:20"`
	SlidingDirection string `gorm:"size:20"`
	Components       []ComponentInstance `gorm:"foreignKey:PanelID"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComponentInstance binds a panel to a product and carries the user's
// option selections.
type ComponentInstance struct {
	ID        uint `gorm:"primaryKey"`
	PanelID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Product   Product           `gorm:"foreignKey:ProductID"`
	Options   []ComponentOption `gorm:"foreignKey:ComponentID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComponentOption records one selection: the chosen option for a category,
// an optional quantity (range-quantity categories), an optional variant and
// the included (no charge) flag.
type ComponentOption struct {
	ID          uint `gorm:"primaryKey"`
	ComponentID uint `gorm:"not null;index"`
	CategoryID  uint `gorm:"not null;index"`
	OptionID    uint `gorm:"not null"`
	Quantity    int  `gorm:"default:1"`
	VariantID   *uint
	Included    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
