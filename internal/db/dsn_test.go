package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"postgres://u:p@localhost:5432/pricing", "postgres://u:p@localhost:5432/pricing"},
		{"  postgres://u:p@localhost/pricing  ", "postgres://u:p@localhost/pricing"},
		{`"host=localhost user=u dbname=pricing"`, "host=localhost user=u dbname=pricing sslmode=disable"},
		{"host=localhost   user=u    dbname=pricing sslmode=require", "host=localhost user=u dbname=pricing sslmode=require"},
		{"", ""},
		{"not-a-dsn", "not-a-dsn"},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
