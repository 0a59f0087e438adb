package translator

import (
	"errors"
	"testing"

	"github.com/richinsley/gldraw/shader"
	gst "github.com/richinsley/goshadertranslator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappedNames(t *testing.T) {
	names := MappedNames(map[string]gst.ShaderVariable{
		"uTexture":  {MappedName: "_uuTexture"},
		"aPosition": {MappedName: "_uaPosition"},
	})
	assert.Equal(t, map[string]string{
		"uTexture":  "_uuTexture",
		"aPosition": "_uaPosition",
	}, names)
}

func TestTranslateStageName(t *testing.T) {
	var stages []string
	tr := &Translator{translate: func(src, stage string) (string, map[string]gst.ShaderVariable, error) {
		stages = append(stages, stage)
		return "// " + stage + "\n" + src, nil, nil
	}}

	code, names, err := tr.Translate("void main() {}", shader.StageFragment)
	require.NoError(t, err)
	assert.Equal(t, "// fragment\nvoid main() {}", code)
	assert.Empty(t, names)

	_, _, err = tr.Translate("void main() {}", shader.StageVertex)
	require.NoError(t, err)
	assert.Equal(t, []string{"fragment", "vertex"}, stages)
}

func TestTranslateError(t *testing.T) {
	cause := errors.New("'x' : undeclared identifier")
	tr := &Translator{translate: func(src, stage string) (string, map[string]gst.ShaderVariable, error) {
		return "", nil, cause
	}}
	_, _, err := tr.Translate("", shader.StageVertex)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "translation failed: 'x' : undeclared identifier", err.Error())
}
