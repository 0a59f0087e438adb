package binding

// Value is a uniform value. The concrete types are Mat4, Scalar and Sampler.
type Value interface {
	uniformValue()
}

// Mat4 is a column-major 4x4 float matrix.
type Mat4 [16]float32

// Scalar is a float uniform.
type Scalar float32

// Sampler is the texture unit index a sampler uniform reads from.
type Sampler int

func (Mat4) uniformValue()    {}
func (Scalar) uniformValue()  {}
func (Sampler) uniformValue() {}

// Uniform pairs a uniform name with the value to upload.
type Uniform struct {
	Name  string
	Value Value
}
