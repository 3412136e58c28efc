package validate

import (
	"testing"

	"github.com/gogpu/spvval/spirv"
)

func TestDecorationIndex(t *testing.T) {
	src := "OpCapability Shader\n" +
		"OpMemoryModel Logical GLSL450\n" +
		"OpName %S \"S\"\n" +
		"OpName %T \"T\"\n" +
		"OpName %U \"U\"\n" +
		"OpName %v \"v\"\n" +
		"OpDecorate %grp Block\n" +
		"OpDecorate %mgrp Offset 16\n" +
		"%grp = OpDecorationGroup\n" +
		"%mgrp = OpDecorationGroup\n" +
		"OpGroupDecorate %grp %S %T\n" +
		"OpGroupMemberDecorate %mgrp %S 1 %U 0\n" +
		"OpMemberDecorate %S 0 Offset 0\n" +
		"OpDecorate %v BuiltIn FragCoord\n" +
		"%f32 = OpTypeFloat 32\n" +
		"%v4f = OpTypeVector %f32 4\n" +
		"%S = OpTypeStruct %f32 %f32\n" +
		"%T = OpTypeStruct %f32\n" +
		"%U = OpTypeStruct %f32\n" +
		"%in = OpTypePointer Input %v4f\n" +
		"%v = OpVariable %in Input\n"
	r, ids := mustRegistry(t, src)
	d := r.decorations

	for _, name := range []string{"S", "T"} {
		if !d.has(ids[name], spirv.DecorationBlock) {
			t.Errorf("%s should inherit Block from the group", name)
		}
	}
	if d.has(ids["U"], spirv.DecorationBlock) {
		t.Error("U is not in the Block group")
	}

	tests := []struct {
		name   string
		member int
		offset uint32
	}{
		{"S", 0, 0},
		{"S", 1, 16},
		{"U", 0, 16},
	}
	for _, tt := range tests {
		dec, ok := d.findMember(ids[tt.name], tt.member, spirv.DecorationOffset)
		if !ok {
			t.Errorf("%s member %d: Offset missing", tt.name, tt.member)
			continue
		}
		if len(dec.Params) != 1 || dec.Params[0] != tt.offset {
			t.Errorf("%s member %d: Offset = %v, want %d", tt.name, tt.member, dec.Params, tt.offset)
		}
		if dec.Target != ids[tt.name] {
			t.Errorf("%s member %d: Target = %d", tt.name, tt.member, dec.Target)
		}
	}

	if b, ok := d.builtIn(ids["v"]); !ok || b != spirv.BuiltInFragCoord {
		t.Errorf("builtIn(v) = %v, %v", b, ok)
	}
	if _, ok := d.builtIn(ids["S"]); ok {
		t.Error("S carries no whole-id BuiltIn")
	}
	if d.hasMemberBuiltIn(ids["S"]) {
		t.Error("S has no member built-ins")
	}
}
