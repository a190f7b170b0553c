package animals

// Species define las especies del hato.
// @Enum cow, buffalo
type Species string

const (
	SpeciesCow     Species = "cow"
	SpeciesBuffalo Species = "buffalo"
)

func ValidSpecies(s Species) bool {
	return s == SpeciesCow || s == SpeciesBuffalo
}

// Status es el estado administrativo del animal. Es función de la última
// acción explícita del admin, nunca se recalcula desde el historial.
// @Enum active, pregnant, dry, sick
type Status string

const (
	StatusActive   Status = "active"
	StatusPregnant Status = "pregnant"
	StatusDry      Status = "dry"
	StatusSick     Status = "sick"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusPregnant, StatusDry, StatusSick:
		return true
	}
	return false
}
