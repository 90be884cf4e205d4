package ion

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVoltageGatingAtHalfActivation(tst *testing.T) {
	chk.PrintTitle("S4. D_V = 0.5 exactly at V_m = V_½")
	kV, half := 80.0, -0.04
	ch, err := NewChannel("ch", ChannelConfig{
		AllowedPrimaryIon: "na",
		DependenceType:    DependenceVoltage,
		VoltageExponent:   &kV,
		HalfActVoltage:    &half,
	})
	if err != nil {
		tst.Fatalf("NewChannel failed: %v", err)
	}
	d := ch.computeVoltageDependence(-0.04)
	chk.Scalar(tst, "D_V(V_½)", 1e-12, d, 0.5)
}

func TestVoltageGatingAtZero(tst *testing.T) {
	chk.PrintTitle("S4. D_V(0) = 1/(1+e^3.2)")
	kV, half := 80.0, -0.04
	ch, err := NewChannel("ch", ChannelConfig{
		AllowedPrimaryIon: "na",
		DependenceType:    DependenceVoltage,
		VoltageExponent:   &kV,
		HalfActVoltage:    &half,
	})
	if err != nil {
		tst.Fatalf("NewChannel failed: %v", err)
	}
	d := ch.computeVoltageDependence(0.0)
	expected := 1.0 / (1.0 + math.Exp(3.2))
	chk.Scalar(tst, "D_V(0)", 1e-6, d, expected)
}

func TestDependenceNoneIsAlwaysOne(tst *testing.T) {
	chk.PrintTitle("dependence_type=none => D_V=D_pH=D_t=1")
	ch, err := NewChannel("ch", ChannelConfig{DependenceType: DependenceNone, AllowedPrimaryIon: "na"})
	if err != nil {
		tst.Fatalf("NewChannel failed: %v", err)
	}
	chk.Scalar(tst, "D_V", 0, ch.computeVoltageDependence(10.0), 1.0)
	chk.Scalar(tst, "D_pH", 0, ch.computePHDependence(2.0), 1.0)
	chk.Scalar(tst, "D_t", 0, ch.computeTimeDependence(99.0), 1.0)
}

func TestVoltageClampSetsFlag(tst *testing.T) {
	chk.PrintTitle("voltage gating clamps beyond 709/k_V + V_½")
	kV, half := 80.0, -0.04
	ch, err := NewChannel("ch", ChannelConfig{
		AllowedPrimaryIon: "na",
		DependenceType:    DependenceVoltage,
		VoltageExponent:   &kV,
		HalfActVoltage:    &half,
	})
	if err != nil {
		tst.Fatalf("NewChannel failed: %v", err)
	}
	maxV := 709.0/kV + half
	ch.computeVoltageDependence(maxV + 10.0)
	if !ch.VoltageClamped {
		tst.Fatalf("expected VoltageClamped to be set")
	}
}

func TestDefaultPHGatingByChannelType(tst *testing.T) {
	chk.PrintTitle("pH gating defaults follow channel_type")
	wt, wtHalf := defaultPHGating(ChannelTypeWT)
	chk.Scalar(tst, "wt k_pH", 0, wt, 3.0)
	chk.Scalar(tst, "wt pH_½", 0, wtHalf, 5.4)

	mt, mtHalf := defaultPHGating(ChannelTypeMT)
	chk.Scalar(tst, "mt k_pH", 0, mt, 1.0)
	chk.Scalar(tst, "mt pH_½", 0, mtHalf, 7.4)

	clc, clcHalf := defaultPHGating(ChannelTypeCLC)
	chk.Scalar(tst, "clc k_pH", 0, clc, -1.5)
	chk.Scalar(tst, "clc pH_½", 0, clcHalf, 5.5)
}

func TestBindSingleIon(tst *testing.T) {
	chk.PrintTitle("Bind. single-ion channel requires the exact primary ion")
	ch, err := NewChannel("na_leak", ChannelConfig{AllowedPrimaryIon: "na"})
	if err != nil {
		tst.Fatalf("NewChannel failed: %v", err)
	}
	na := NewSpecies("na", SpeciesConfig{})
	if err := ch.Bind(na, nil); err != nil {
		tst.Fatalf("expected Bind to succeed: %v", err)
	}
	cl := NewSpecies("cl", SpeciesConfig{})
	ch2, _ := NewChannel("na_leak2", ChannelConfig{AllowedPrimaryIon: "na"})
	if err := ch2.Bind(cl, nil); err == nil {
		tst.Fatalf("expected Bind to fail for the wrong primary ion")
	}
}

func TestBindTwoIonOrderInsensitive(tst *testing.T) {
	chk.PrintTitle("Bind. two-ion channel accepts either argument order")
	cfg := ChannelConfig{AllowedPrimaryIon: "cl", AllowedSecondaryIon: "h"}
	cl := NewSpecies("cl", SpeciesConfig{})
	h := NewSpecies("h", SpeciesConfig{})

	ch1, _ := NewChannel("clc_h", cfg)
	if err := ch1.Bind(cl, h); err != nil {
		tst.Fatalf("Bind(cl, h) failed: %v", err)
	}
	if ch1.primary != cl || ch1.secondary != h {
		tst.Fatalf("expected primary=cl secondary=h")
	}

	ch2, _ := NewChannel("clc_h2", cfg)
	if err := ch2.Bind(h, cl); err != nil {
		tst.Fatalf("Bind(h, cl) failed: %v", err)
	}
	if ch2.primary != cl || ch2.secondary != h {
		tst.Fatalf("expected sorted binding: primary=cl secondary=h")
	}
}

func TestBindRejectsUnrelatedSpecies(tst *testing.T) {
	chk.PrintTitle("Bind. two-ion channel rejects a species outside its allowed set")
	cfg := ChannelConfig{AllowedPrimaryIon: "cl", AllowedSecondaryIon: "h"}
	ch, _ := NewChannel("clc_h", cfg)
	cl := NewSpecies("cl", SpeciesConfig{})
	na := NewSpecies("na", SpeciesConfig{})
	if err := ch.Bind(cl, na); err == nil {
		tst.Fatalf("expected a binding error")
	}
}
