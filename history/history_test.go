package history

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

type fakeEntity struct {
	name string
	val  float64
}

func (f *fakeEntity) DisplayName() string { return f.name }
func (f *fakeEntity) Fields() []Field     { return []Field{{Name: "x", Value: f.val}} }

type otherEntity struct{ name string }

func (o *otherEntity) DisplayName() string { return o.name }
func (o *otherEntity) Fields() []Field     { return nil }

func TestRegisterAndAppendSnapshot(tst *testing.T) {
	chk.PrintTitle("Register/AppendSnapshot. series grow one sample per snapshot")
	s := NewStore()
	e := &fakeEntity{name: "a", val: 1.0}
	if err := s.Register(e); err != nil {
		tst.Fatalf("Register failed: %v", err)
	}

	e.val = 1.0
	s.AppendSnapshot()
	e.val = 2.0
	s.AppendSnapshot()
	e.val = 3.0
	s.AppendSnapshot()

	series, ok := s.SeriesFor("a", "x")
	if !ok {
		tst.Fatalf("expected series a_x to exist")
	}
	chk.IntAssert(len(series), 3)
	chk.Scalar(tst, "series[2]", 1e-15, series[2], 3.0)
	chk.IntAssert(s.Len(), 3)
}

func TestRegisterDuplicateSameKind(tst *testing.T) {
	chk.PrintTitle("Register. duplicate same-kind name is a conflict")
	s := NewStore()
	if err := s.Register(&fakeEntity{name: "a"}); err != nil {
		tst.Fatalf("Register failed: %v", err)
	}
	if err := s.Register(&fakeEntity{name: "a"}); err == nil {
		tst.Fatalf("expected a name-conflict error")
	}
}

func TestRegisterCrossKindConflict(tst *testing.T) {
	chk.PrintTitle("Register. cross-kind name collision is a conflict")
	s := NewStore()
	if err := s.Register(&fakeEntity{name: "cl"}); err != nil {
		tst.Fatalf("Register failed: %v", err)
	}
	if err := s.Register(&otherEntity{name: "cl"}); err == nil {
		tst.Fatalf("expected a cross-kind name-conflict error")
	}
}

func TestFlushKeepsRegistrations(tst *testing.T) {
	chk.PrintTitle("Flush. clears series but keeps registrations")
	s := NewStore()
	e := &fakeEntity{name: "a", val: 5.0}
	if err := s.Register(e); err != nil {
		tst.Fatalf("Register failed: %v", err)
	}
	s.AppendSnapshot()
	s.Flush()
	chk.IntAssert(s.Len(), 0)
	s.AppendSnapshot()
	series, _ := s.SeriesFor("a", "x")
	chk.IntAssert(len(series), 1)
}

func TestReset(tst *testing.T) {
	chk.PrintTitle("Reset. drops registrations and series")
	s := NewStore()
	if err := s.Register(&fakeEntity{name: "a"}); err != nil {
		tst.Fatalf("Register failed: %v", err)
	}
	s.Reset()
	if _, ok := s.SeriesFor("a", "x"); ok {
		tst.Fatalf("expected series to be gone after Reset")
	}
	chk.IntAssert(len(s.Keys()), 0)
}
