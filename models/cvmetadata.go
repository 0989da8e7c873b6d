package models

import "time"

// MaxRawTextChars caps the raw extracted text persisted with the metadata.
const MaxRawTextChars = 50000

// CVMetadata holds the AI-extracted structure of a CV, keyed 1:1 by
// application id. Re-parsing overwrites the previous row.
// @Description Structured CV metadata extracted by the parser
type CVMetadata struct {
	ApplicationID  string           `json:"postulacion_id" firestore:"postulacionId"`
	FullName       string           `json:"nombre_completo" firestore:"nombreCompleto"`
	Email          string           `json:"email_extraido" firestore:"emailExtraido"`
	Phone          string           `json:"telefono_extraido" firestore:"telefonoExtraido"`
	Title          string           `json:"titulo_profesional" firestore:"tituloProfesional"`
	Summary        string           `json:"resumen" firestore:"resumen"`
	YearsExp       float64          `json:"anos_experiencia" firestore:"anosExperiencia"`
	Skills         []string         `json:"habilidades" firestore:"habilidades"`
	Languages      []Language       `json:"idiomas" firestore:"idiomas"`
	WorkHistory    []WorkExperience `json:"experiencia" firestore:"experiencia"`
	Education      []Education      `json:"educacion" firestore:"educacion"`
	Certifications []string         `json:"certificaciones" firestore:"certificaciones"`
	RawText        string           `json:"texto_completo,omitempty" firestore:"textoCompleto"`
	Confidence     float64          `json:"confianza_score" firestore:"confianzaScore"`
	Model          string           `json:"modelo_usado" firestore:"modeloUsado"`
	ParsedAt       time.Time        `json:"parsed_at" firestore:"parsedAt"`
}

// Language represents a language and its proficiency level
type Language struct {
	Language    string `json:"idioma" firestore:"idioma" example:"Inglés"`
	Proficiency string `json:"nivel" firestore:"nivel" example:"Avanzado (C1)"`
}

// WorkExperience represents one work history entry
type WorkExperience struct {
	Company     string `json:"empresa" firestore:"empresa"`
	Role        string `json:"cargo" firestore:"cargo"`
	StartDate   string `json:"desde" firestore:"desde" example:"2020-01"`
	EndDate     string `json:"hasta" firestore:"hasta" example:"presente"`
	Description string `json:"descripcion,omitempty" firestore:"descripcion"`
}

// Education represents one education entry
type Education struct {
	Institution string `json:"institucion" firestore:"institucion"`
	Degree      string `json:"titulo" firestore:"titulo"`
	StartDate   string `json:"desde" firestore:"desde" example:"2015"`
	EndDate     string `json:"hasta" firestore:"hasta" example:"2019"`
}
