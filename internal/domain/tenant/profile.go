package tenant

// Profile is the signed-in owner and the business their book belongs to
type Profile struct {
	UserID         string `json:"userId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	TenantID       string `json:"tenantId"`
	BusinessName   string `json:"businessName,omitempty"`
	BusinessNumber string `json:"businessNumber,omitempty"`
}

// ProfileUpdate holds the editable profile fields. Empty fields are left unchanged.
type ProfileUpdate struct {
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	BusinessName   string `json:"businessName,omitempty"`
	BusinessNumber string `json:"businessNumber,omitempty"`
}
