package types

import "testing"

func TestIsSubtypeNeverIsBottom(t *testing.T) {
	tests := []Type{TyI32, TyBool, TyUnit, Vec(TyI32), Func(nil, TyI32, Pure)}
	for _, want := range tests {
		if !IsSubtype(TyNever, want) {
			t.Errorf("IsSubtype(Never, %s) = false, want true", want)
		}
	}
}

func TestIsSubtypeEqualValueTypes(t *testing.T) {
	if !IsSubtype(TyI32, TyI32) {
		t.Error("IsSubtype(i32, i32) = false, want true")
	}
	if IsSubtype(TyI32, TyI64) {
		t.Error("IsSubtype(i32, i64) = true, want false")
	}
}

func TestIsSubtypeFuncContravariantParamsCovariantResult(t *testing.T) {
	// (Bool -> i32) <: (Never -> i32): Never is a subtype of Bool, so a
	// function willing to accept Bool can stand in where one accepting
	// only Never is expected (a caller supplying Never's sole value,
	// which does not exist, can never actually call it).
	wide := Func([]Type{TyBool}, TyI32, Impure)
	narrow := Func([]Type{TyNever}, TyI32, Impure)
	if !IsSubtype(wide, narrow) {
		t.Error("IsSubtype(Bool->i32, Never->i32) = false, want true (contravariant params)")
	}
	if IsSubtype(narrow, wide) {
		t.Error("IsSubtype(Never->i32, Bool->i32) = true, want false")
	}
}

func TestIsSubtypeFuncMismatchedArrowKind(t *testing.T) {
	pure := Func([]Type{TyI32}, TyI32, Pure)
	impure := Func([]Type{TyI32}, TyI32, Impure)
	if IsSubtype(pure, impure) || IsSubtype(impure, pure) {
		t.Error("functions with different arrow kinds must never be subtypes of each other")
	}
}

func TestLCSAllNeverIsNever(t *testing.T) {
	got, ok := LCS([]Type{TyNever, TyNever})
	if !ok || !Equal(got, TyNever) {
		t.Errorf("LCS(all Never) = (%s, %v), want (Never, true)", got, ok)
	}
}

func TestLCSDropsNeverKeepsOneDistinctType(t *testing.T) {
	got, ok := LCS([]Type{TyNever, TyI32, TyNever, TyI32})
	if !ok || !Equal(got, TyI32) {
		t.Errorf("LCS = (%s, %v), want (i32, true)", got, ok)
	}
}

func TestLCSMoreThanOneDistinctTypeFails(t *testing.T) {
	if _, ok := LCS([]Type{TyI32, TyBool}); ok {
		t.Error("LCS(i32, Bool) succeeded, want failure")
	}
}

func TestLCSEmptySetIsNever(t *testing.T) {
	got, ok := LCS(nil)
	if !ok || !Equal(got, TyNever) {
		t.Errorf("LCS(nil) = (%s, %v), want (Never, true)", got, ok)
	}
}

func TestVecStringRepr(t *testing.T) {
	if got := Vec(TyI32).String(); got != "Vec[i32]" {
		t.Errorf("Vec(i32).String() = %q, want %q", got, "Vec[i32]")
	}
	if got := Func([]Type{TyI32, TyBool}, TyUnit, Pure).String(); got != "(i32, Bool) *> Unit" {
		t.Errorf("pure Func.String() = %q, want %q", got, "(i32, Bool) *> Unit")
	}
}
