// Package translator rewrites WebGL2 (ESSL 300) shader sources for the
// desktop GL backend with goshadertranslator.
package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/gldraw/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Translator implements shader.Translator for a fixed output format.
type Translator struct {
	translate func(src, stage string) (string, map[string]gst.ShaderVariable, error)
}

var _ shader.Translator = (*Translator)(nil)

// NewGLSL410 returns a translator producing desktop GLSL 4.10 sources.
func NewGLSL410() (*Translator, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	return &Translator{translate: func(src, stage string) (string, map[string]gst.ShaderVariable, error) {
		out, err := t.TranslateShader(src, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
		if err != nil {
			return "", nil, err
		}
		return out.Code, out.Variables, nil
	}}, nil
}

// Translate implements shader.Translator.
func (tr *Translator) Translate(src string, stage shader.Stage) (string, map[string]string, error) {
	code, vars, err := tr.translate(src, stage.String())
	if err != nil {
		return "", nil, fmt.Errorf("translation failed: %w", err)
	}
	return code, MappedNames(vars), nil
}

// MappedNames flattens a translator variable table to original -> mapped
// names.
func MappedNames(vars map[string]gst.ShaderVariable) map[string]string {
	names := make(map[string]string, len(vars))
	for name, v := range vars {
		names[name] = v.MappedName
	}
	return names
}
