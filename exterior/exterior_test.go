package exterior

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewAndFields(tst *testing.T) {
	chk.PrintTitle("New. Exterior tracks only pH")
	e := New("exterior", Config{PH: 7.2})
	chk.Scalar(tst, "pH", 0, e.PH(), 7.2)
	fields := e.Fields()
	chk.IntAssert(len(fields), 1)
	chk.Scalar(tst, "fields[0]", 0, fields[0].Value, 7.2)
	if fields[0].Name != "pH" {
		tst.Fatalf("expected field name 'pH', got %q", fields[0].Name)
	}
}

func TestDefaultConfig(tst *testing.T) {
	chk.PrintTitle("DefaultConfig. pH defaults to 7.2")
	chk.Scalar(tst, "default pH", 0, DefaultConfig().PH, 7.2)
}
