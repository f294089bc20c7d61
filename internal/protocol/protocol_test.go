package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecodeBase(t *testing.T) {
	m, err := DecodeBase([]byte(`{"type":"ACT","protocol_version":"1.0","verb":"CRAFT"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Type != TypeAct || m.ProtocolVersion != Version {
		t.Fatalf("base = %+v", m)
	}
}

func TestDecodeBaseRejectsGarbage(t *testing.T) {
	if _, err := DecodeBase([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestIsKnownCode(t *testing.T) {
	for _, code := range []string{
		ErrProtoBadRequest, ErrBadRequest, ErrNoResource, ErrNoCapacity,
		ErrInvalidSlot, ErrInvalidTarget, ErrBlocked, ErrConflict, ErrInternal,
	} {
		if !IsKnownCode(code) {
			t.Fatalf("code %q not known", code)
		}
	}
	if !IsKnownCode("") {
		t.Fatalf("empty code should pass")
	}
	if IsKnownCode("E_MADE_UP") {
		t.Fatalf("unknown code accepted")
	}
}

func TestActMsgOmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(ActMsg{Type: TypeAct, ProtocolVersion: Version, Verb: VerbCancel})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"craft_id", "target_id", "action", "other_kind"} {
		if _, ok := m[k]; ok {
			t.Fatalf("field %q serialized when empty", k)
		}
	}
}
