package settings

// StaticAttributeProvider serves a fixed attribute list. Deployments
// where the platform exposes a live attribute catalog replace this with
// their own provider implementation.
type StaticAttributeProvider struct {
	choices []Choice
}

func NewStaticAttributeProvider(choices []Choice) *StaticAttributeProvider {
	return &StaticAttributeProvider{choices: choices}
}

func (p *StaticAttributeProvider) ProductAttributes() []Choice {
	return p.choices
}
