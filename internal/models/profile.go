package models

// Gender is one of the two values offered by the registration form.
type Gender string

const (
	GenderMan   Gender = "Man"
	GenderWoman Gender = "Woman"
)

// IsValid reports whether g is one of the known genders.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMan, GenderWoman:
		return true
	default:
		return false
	}
}

// Profile holds the user's registration data. Everything except Gender is free text.
type Profile struct {
	Name         string `json:"name"`
	Age          string `json:"age"`
	Gender       Gender `json:"gender"`
	Weight       string `json:"weight"`
	Height       string `json:"height"`
	TargetWeight string `json:"target_weight"`
	Lifestyle    string `json:"lifestyle"`
	Goals        string `json:"goals"`
	Registered   bool   `json:"registered"`
}

// GuestProfile is the profile shown before registration.
func GuestProfile() Profile {
	return Profile{Name: "Guest", Gender: GenderMan}
}
