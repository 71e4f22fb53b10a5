package refraction

import (
	"errors"
	"testing"
)

func TestNewMaterialNilShader(t *testing.T) {
	m, err := NewMaterial(nil)
	if !errors.Is(err, ErrNilShader) {
		t.Errorf("err = %v, want ErrNilShader", err)
	}
	if m != nil {
		t.Error("material should be nil on error")
	}
}

func TestMaterialProperties(t *testing.T) {
	sh := &Shader{name: "s"}
	m, err := NewMaterial(sh)
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}
	if m.Shader() != sh {
		t.Error("Shader() should return the construction shader")
	}
	if _, ok := m.Float(BlurPowerParam); ok {
		t.Error("unset float reported as set")
	}
	m.SetFloat(BlurPowerParam, 1.25)
	m.SetVector(BlurOffsetsParam, Vec4{X: 1, Y: 2})

	if v, ok := m.Float(BlurPowerParam); !ok || v != 1.25 {
		t.Errorf("Float = %v (%v), want 1.25", v, ok)
	}
	if v, ok := m.Vector(BlurOffsetsParam); !ok || v != (Vec4{X: 1, Y: 2}) {
		t.Errorf("Vector = %+v (%v), want {1 2 0 0}", v, ok)
	}
}

func TestMaterialDestroy(t *testing.T) {
	m, _ := NewMaterial(&Shader{})
	m.SetFloat("a", 1)
	m.Destroy()

	if !m.IsDestroyed() {
		t.Error("IsDestroyed = false after Destroy")
	}
	if m.Shader() != nil {
		t.Error("destroyed material should have no shader")
	}
	if _, ok := m.Float("a"); ok {
		t.Error("properties should be dropped")
	}
	m.SetFloat("b", 2)
	m.SetVector("c", Vec4{})
	if _, ok := m.Float("b"); ok {
		t.Error("destroyed material should ignore writes")
	}
}

func TestMaterialUniforms(t *testing.T) {
	var g ShaderGlobals
	g.SetFloat(BlurPowerParam, 1)
	g.SetFloat("_Other", 3)
	g.SetVector(BlurOffsetsParam, Vec4{X: 0.5})

	m, _ := NewMaterial(&Shader{})
	m.SetFloat(BlurPowerParam, 2)

	u := m.Uniforms(&g)
	if u["BlurPower"] != float32(2) {
		t.Errorf("BlurPower = %v, want material override 2", u["BlurPower"])
	}
	if u["Other"] != float32(3) {
		t.Errorf("Other = %v, want global 3", u["Other"])
	}
	off, ok := u["Offsets"].([]float32)
	if !ok || len(off) != 4 || off[0] != 0.5 {
		t.Errorf("Offsets = %v, want [0.5 0 0 0]", u["Offsets"])
	}

	if len(m.Uniforms(nil)) != 1 {
		t.Errorf("Uniforms(nil) = %v, want material only", m.Uniforms(nil))
	}
}

func TestUniformName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"offsets", "Offsets"},
		{"_BlurPower", "BlurPower"},
		{"__x", "X"},
		{"Already", "Already"},
		{"_", "_"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := uniformName(tt.in); got != tt.want {
			t.Errorf("uniformName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
