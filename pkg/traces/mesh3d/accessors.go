package mesh3d

// Ambient light increases overall color visibility but can wash out the
// image. Interval [0, 1].
func (l *Lighting) Ambient() (float64, bool) { return deref(l.ambient) }

// SetAmbient validates and stores the ambient term.
func (l *Lighting) SetAmbient(v any) error { return l.Set("ambient", v) }

// Diffuse is the extent that incident rays are reflected in a range of
// angles. Interval [0, 1].
func (l *Lighting) Diffuse() (float64, bool) { return deref(l.diffuse) }

// SetDiffuse validates and stores the diffuse term.
func (l *Lighting) SetDiffuse(v any) error { return l.Set("diffuse", v) }

// FaceNormalsEpsilon guards face normal computation on degenerate geometry.
// Interval [0, 1].
func (l *Lighting) FaceNormalsEpsilon() (float64, bool) { return deref(l.faceNormalsEpsilon) }

// SetFaceNormalsEpsilon validates and stores the face normals epsilon.
func (l *Lighting) SetFaceNormalsEpsilon(v any) error { return l.Set("facenormalsepsilon", v) }

// Fresnel is the reflectance as a dependency of the viewing angle. Interval
// [0, 5].
func (l *Lighting) Fresnel() (float64, bool) { return deref(l.fresnel) }

// SetFresnel validates and stores the fresnel term.
func (l *Lighting) SetFresnel(v any) error { return l.Set("fresnel", v) }

// Roughness widens and softens the specular shine. Interval [0, 1].
func (l *Lighting) Roughness() (float64, bool) { return deref(l.roughness) }

// SetRoughness validates and stores the roughness term.
func (l *Lighting) SetRoughness(v any) error { return l.Set("roughness", v) }

// Specular is the level that incident rays are reflected in a single
// direction. Interval [0, 2].
func (l *Lighting) Specular() (float64, bool) { return deref(l.specular) }

// SetSpecular validates and stores the specular term.
func (l *Lighting) SetSpecular(v any) error { return l.Set("specular", v) }

// VertexNormalsEpsilon guards vertex normal computation on degenerate
// geometry. Interval [0, 1].
func (l *Lighting) VertexNormalsEpsilon() (float64, bool) { return deref(l.vertexNormalsEpsilon) }

// SetVertexNormalsEpsilon validates and stores the vertex normals epsilon.
func (l *Lighting) SetVertexNormalsEpsilon(v any) error { return l.Set("vertexnormalsepsilon", v) }

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
