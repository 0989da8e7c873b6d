package models

import "time"

// CVRefPending is the placeholder stored while the CV upload is in flight.
// Consumers must treat an application carrying it as not yet complete.
const CVRefPending = "pending"

// Application represents one candidate submission against an offer
// @Description A candidate's application with contact info and CV reference
type Application struct {
	ID             string    `json:"id" firestore:"-"`
	OfferID        string    `json:"oferta_id" firestore:"ofertaId"`
	Name           string    `json:"nombre" firestore:"nombre" example:"Ana Pérez"`
	Email          string    `json:"email" firestore:"email" example:"ana@example.com"`
	Phone          string    `json:"telefono" firestore:"telefono" example:"+56912345678"`
	Message        string    `json:"mensaje,omitempty" firestore:"mensaje,omitempty"`
	CVFileRef      string    `json:"cv_url" firestore:"cvUrl"`
	CVOriginalName string    `json:"cv_nombre" firestore:"cvNombre"`
	CVSizeBytes    int64     `json:"cv_size" firestore:"cvSize"`
	ClientIP       string    `json:"-" firestore:"clientIp"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

// CVReady reports whether the stored CV reference points at a real object.
func (a *Application) CVReady() bool {
	return a.CVFileRef != "" && a.CVFileRef != CVRefPending
}
