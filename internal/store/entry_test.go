package store

import (
	"bytes"
	"sync/atomic"
	"testing"

	"github.com/dshills/confstore/internal/variant"
)

func TestEntry_SetGet(t *testing.T) {
	s := NewSection("test")
	e := s.AddEntry("value")

	e.SetBool(true)
	if !e.GetBool() {
		t.Error("GetBool() = false")
	}
	e.SetChar('q')
	if e.GetChar() != 'q' {
		t.Errorf("GetChar() = %q", e.GetChar())
	}
	e.SetInt8(-8)
	if e.GetInt8() != -8 {
		t.Errorf("GetInt8() = %d", e.GetInt8())
	}
	e.SetInt16(-16)
	if e.GetInt16() != -16 {
		t.Errorf("GetInt16() = %d", e.GetInt16())
	}
	e.SetInt32(-32)
	if e.GetInt32() != -32 {
		t.Errorf("GetInt32() = %d", e.GetInt32())
	}
	e.SetInt64(-64)
	if e.GetInt64() != -64 {
		t.Errorf("GetInt64() = %d", e.GetInt64())
	}
	e.SetUint8(8)
	if e.GetUint8() != 8 {
		t.Errorf("GetUint8() = %d", e.GetUint8())
	}
	e.SetUint16(16)
	if e.GetUint16() != 16 {
		t.Errorf("GetUint16() = %d", e.GetUint16())
	}
	e.SetUint32(32)
	if e.GetUint32() != 32 {
		t.Errorf("GetUint32() = %d", e.GetUint32())
	}
	e.SetUint64(1 << 63)
	if e.GetUint64() != 1<<63 {
		t.Errorf("GetUint64() = %d", e.GetUint64())
	}
	e.SetFloat32(1.25)
	if e.GetFloat32() != 1.25 {
		t.Errorf("GetFloat32() = %v", e.GetFloat32())
	}
	e.SetFloat64(2.5)
	if e.GetFloat64() != 2.5 {
		t.Errorf("GetFloat64() = %v", e.GetFloat64())
	}
	e.SetString("hello")
	if e.GetString() != "hello" {
		t.Errorf("GetString() = %q", e.GetString())
	}
	e.SetBuffer([]byte{1, 2, 3})
	if !bytes.Equal(e.GetBuffer(), []byte{1, 2, 3}) {
		t.Errorf("GetBuffer() = %v", e.GetBuffer())
	}

	x := 5
	e.SetPointer(&x, 8)
	if e.GetPointer().(*int) != &x {
		t.Error("GetPointer() returned a different referent")
	}
}

func TestEntry_Metadata(t *testing.T) {
	s := NewSection("root")
	e := s.AddEntryString("Title", "abc")

	if e.Name() != "Title" {
		t.Errorf("Name() = %q", e.Name())
	}
	if e.Parent() != s {
		t.Error("Parent() is not the creating section")
	}
	if e.Hash() == 0 || e.Hash() != s.AddEntry("Title").Hash() {
		t.Error("Hash() is not stable")
	}
	if e.Size() != 3 || e.Kind() != variant.KindString {
		t.Errorf("Size() = %d, Kind() = %v", e.Size(), e.Kind())
	}
	if e.String() != "abc" {
		t.Errorf("String() = %q", e.String())
	}
}

func TestEntry_SetDefault(t *testing.T) {
	s := NewSection("root")
	e := s.AddEntry("Width")

	if !e.SetDefaultInt32(800) {
		t.Fatal("SetDefaultInt32 on unset entry = false")
	}
	if e.SetDefaultInt32(640) {
		t.Error("SetDefaultInt32 on set entry = true")
	}
	if e.SetDefaultString("wide") {
		t.Error("SetDefaultString on set entry = true")
	}
	if e.GetInt32() != 800 || e.Subtype() != variant.SubInt32 {
		t.Errorf("value = %v (%v), want 800 int32", e.Value(), e.Subtype())
	}
}

func TestEntry_CopyValue(t *testing.T) {
	s := NewSection("root")
	narrow := s.AddEntryInt32("narrow", 1)
	wide := s.AddEntryInt64("wide", 1<<40+7)
	text := s.AddEntryString("text", "x")
	unset := s.AddEntry("unset")

	if !narrow.CopyValue(wide) {
		t.Fatal("CopyValue int64 -> int32 = false")
	}
	if narrow.Subtype() != variant.SubInt32 || narrow.GetInt32() != 7 {
		t.Errorf("narrow = %v (%v), want truncated int32 7", narrow.Value(), narrow.Subtype())
	}

	if !wide.CopyValue(narrow) || wide.Subtype() != variant.SubInt64 || wide.GetInt64() != 7 {
		t.Errorf("wide = %v (%v)", wide.Value(), wide.Subtype())
	}

	if text.CopyValue(wide) {
		t.Error("CopyValue across kinds = true")
	}
	if text.GetString() != "x" {
		t.Errorf("text changed to %q", text.GetString())
	}

	if !unset.CopyValue(text) || unset.GetString() != "x" {
		t.Errorf("unset = %v", unset.Value())
	}

	if narrow.CopyValue(nil) || narrow.CopyValue(narrow) {
		t.Error("CopyValue(nil/self) = true")
	}
}

func TestEntry_ChangeCallbacks(t *testing.T) {
	s := NewSection("root")
	e := s.AddEntryInt32("n", 1)

	var typeChanges, valueChanges atomic.Int32
	s.AddCallback(EntryTypeChange, func(ev Event, it Item, arg any) {
		typeChanges.Add(1)
	}, nil)
	s.AddCallback(EntryValueChange, func(ev Event, it Item, arg any) {
		if it.Entry() != e {
			t.Errorf("callback item = %v, want entry n", it.Name())
		}
		valueChanges.Add(1)
	}, nil)

	e.SetInt32(1)
	if typeChanges.Load() != 0 || valueChanges.Load() != 0 {
		t.Errorf("same value fired callbacks: type=%d value=%d", typeChanges.Load(), valueChanges.Load())
	}

	e.SetInt32(2)
	if typeChanges.Load() != 0 || valueChanges.Load() != 1 {
		t.Errorf("value change: type=%d value=%d", typeChanges.Load(), valueChanges.Load())
	}

	e.SetString("two")
	if typeChanges.Load() != 1 || valueChanges.Load() != 2 {
		t.Errorf("type change: type=%d value=%d", typeChanges.Load(), valueChanges.Load())
	}

	// Prefix-equal strings of different length are still a change.
	e.SetString("two!")
	if valueChanges.Load() != 3 {
		t.Errorf("longer string: value=%d, want 3", valueChanges.Load())
	}

	e.Clear()
	if e.IsSet() {
		t.Error("IsSet() after Clear = true")
	}
	if typeChanges.Load() != 2 {
		t.Errorf("Clear: type=%d, want 2", typeChanges.Load())
	}
}

func TestEntry_CallbackSeesCommittedValue(t *testing.T) {
	s := NewSection("root")
	e := s.AddEntryInt32("n", 1)

	var seen int32
	s.AddCallback(EntryValueChange, func(ev Event, it Item, arg any) {
		seen = it.Entry().GetInt32()
	}, nil)

	e.SetInt32(42)
	if seen != 42 {
		t.Errorf("callback saw %d, want 42", seen)
	}
}

func TestEntry_ReleaseOrphan(t *testing.T) {
	s := NewSection("root")
	e := s.AddEntryString("keep", "me")
	e.Retain()

	if !s.RemoveEntry("keep") {
		t.Fatal("RemoveEntry = false")
	}
	if e.Parent() != nil {
		t.Error("orphaned entry still reports a parent")
	}
	if e.GetString() != "me" {
		t.Errorf("orphaned entry value = %q, want me", e.GetString())
	}
	if e.RefCount() != 1 {
		t.Errorf("RefCount() = %d, want 1", e.RefCount())
	}

	// Orphans no longer notify anyone.
	e.SetString("still works")

	if e.Release() != 0 {
		t.Error("final Release did not reach zero")
	}
	if e.IsSet() {
		t.Error("destroyed entry kept its value")
	}
}
