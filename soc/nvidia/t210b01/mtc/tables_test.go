// https://github.com/nxboot/tegra-mtc
//
// Copyright (c) The TamaGo Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mtc

import (
	"strings"
	"testing"
)

func TestSelectTablesKnownID(t *testing.T) {
	tables, err := SelectTables(0x8) // MarikoIowaSamsung4gb
	if err != nil {
		t.Fatalf("SelectTables(0x8) returned error: %v", err)
	}

	if len(tables) != 3 {
		t.Fatalf("len(tables) = %d, want 3", len(tables))
	}
}

func TestSelectTablesUnmappedID(t *testing.T) {
	_, err := SelectTables(0x1D) // 29 decimal, not in the fixed switch

	if err == nil {
		t.Fatalf("expected an error for unmapped DRAM id 0x1D")
	}

	if !strings.Contains(err.Error(), "DRAM id 29") {
		t.Fatalf("error %q does not mention \"DRAM id 29\"", err.Error())
	}
}

func TestSelectTablesEristaOnlyIndex(t *testing.T) {
	// DRAM id 0x1 maps to table-set index 2, which has no B01 array.
	_, err := SelectTables(0x1)

	if err == nil {
		t.Fatalf("expected an error for Erista-only DRAM id 0x1")
	}
}
