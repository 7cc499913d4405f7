// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dialog

import "testing"

func TestSerialMonotonic(t *testing.T) {
	s1 := nextSerial()
	s2 := nextSerial()
	s3 := nextSerial()

	if s1 >= s2 {
		t.Fatalf("serials not increasing: %d >= %d", s1, s2)
	}
	if s2 >= s3 {
		t.Fatalf("serials not increasing: %d >= %d", s2, s3)
	}
}

func TestDialogsGetDistinctSerials(t *testing.T) {
	lb := NewLoopback(nil)
	d1 := New(lb, "localhost", 1, "a")
	d2 := New(lb, "localhost", 1, "b")

	if d1.s.serial == d2.s.serial {
		t.Fatalf("dialog serials collide: %d", d1.s.serial)
	}
}
