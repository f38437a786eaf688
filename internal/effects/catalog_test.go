package effects_test

import (
	"testing"

	"clipforge/internal/effects"
	"clipforge/internal/media"
)

func TestListGroupsAllTypes(t *testing.T) {
	listed := effects.List()
	for _, effectType := range []media.EffectType{media.EffectFilter, media.EffectTransition, media.EffectText, media.EffectAudio} {
		if len(listed[effectType]) == 0 {
			t.Fatalf("no definitions for type %s", effectType)
		}
	}
	if len(listed[media.EffectFilter]) != 5 {
		t.Fatalf("filter definitions = %d, want 5", len(listed[media.EffectFilter]))
	}
}

func TestFindKnownDefinition(t *testing.T) {
	definition, ok := effects.Find(media.EffectFilter, "brightness")
	if !ok {
		t.Fatal("brightness filter not found")
	}
	if len(definition.Parameters) != 1 {
		t.Fatalf("parameters = %d, want 1", len(definition.Parameters))
	}
	param := definition.Parameters[0]
	if param.Name != "value" || param.Kind != effects.KindNumber {
		t.Fatalf("unexpected schema %+v", param)
	}
	if *param.Min != -1 || *param.Max != 1 {
		t.Fatalf("bounds = [%v, %v]", *param.Min, *param.Max)
	}
}

func TestFindUnknown(t *testing.T) {
	if _, ok := effects.Find(media.EffectFilter, "vhs"); ok {
		t.Fatal("unexpected definition for unknown name")
	}
	if _, ok := effects.Find(media.EffectType("weird"), "blur"); ok {
		t.Fatal("unexpected definition for unknown type")
	}
}

func TestListReturnsCopies(t *testing.T) {
	listed := effects.List()
	listed[media.EffectFilter][0].Name = "mutated"
	again := effects.List()
	if again[media.EffectFilter][0].Name == "mutated" {
		t.Fatal("List exposes internal catalog slices")
	}
}
