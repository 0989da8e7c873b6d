package models

import "time"

// Valid jornada values for an offer
var ValidJornadas = []string{"Full-time", "Part-time", "Freelance", "Práctica"}

// Offer represents a job posting owned by an employer
// @Description Job offer published by an employer
type Offer struct {
	ID          string    `json:"id" firestore:"-" example:"d9b2d63d-a233-4123-847a-7c1f2d1e8c7b"`
	Title       string    `json:"titulo" firestore:"titulo" example:"Desarrollador Backend"`
	Description string    `json:"descripcion" firestore:"descripcion"`
	Company     string    `json:"empresa" firestore:"empresa" example:"Acme Chile SpA"`
	Jornada     string    `json:"tipo_jornada" firestore:"tipoJornada" example:"Full-time"`
	Category    string    `json:"categoria,omitempty" firestore:"categoria,omitempty"`
	Comuna      string    `json:"comuna" firestore:"comuna" example:"Providencia"`
	EmployerID  string    `json:"empleador_id" firestore:"empleadorId"`
	Active      bool      `json:"activa" firestore:"activa"`
	ExpiresAt   time.Time `json:"expires_at" firestore:"expiresAt"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Acceptable reports whether the offer can currently receive applications.
func (o *Offer) Acceptable(now time.Time) error {
	if !o.Active {
		return ErrOfferInactive
	}
	if !o.ExpiresAt.IsZero() && !o.ExpiresAt.After(now) {
		return ErrOfferExpired
	}
	return nil
}

// Employer represents an employer account
// @Description Employer account information
type Employer struct {
	ID        string    `json:"id" firestore:"-" example:"empleador@empresa.cl"`
	Email     string    `json:"email" firestore:"email"`
	Name      string    `json:"nombre" firestore:"nombre"`
	Company   string    `json:"empresa" firestore:"empresa"`
	Password  string    `json:"-" firestore:"password"` // bcrypt hash, never sent to client
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}
