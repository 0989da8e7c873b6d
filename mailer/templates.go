package mailer

import "fmt"

func applicantTemplate(name, offerTitle, company string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1d4ed8;">Postulación recibida</h2>
  <p>Hola %s,</p>
  <p>Tu postulación al cargo <strong>%s</strong> en <strong>%s</strong> fue recibida exitosamente.</p>
  <p>El empleador revisará tu CV y te contactará directamente si tu perfil se ajusta al cargo.</p>
  <p style="color: #6b7280; font-size: 13px;">Portal de Empleos Chile</p>
</body>
</html>`, name, offerTitle, company)
}

func employerTemplate(applicantName, offerTitle, company, dashboardURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1d4ed8;">Nueva postulación</h2>
  <p><strong>%s</strong> postuló al cargo <strong>%s</strong> en %s.</p>
  <p><a href="%s" style="background: #1d4ed8; color: #fff; padding: 10px 18px; border-radius: 6px; text-decoration: none;">Ver postulaciones</a></p>
  <p style="color: #6b7280; font-size: 13px;">Portal de Empleos Chile</p>
</body>
</html>`, applicantName, offerTitle, company, dashboardURL)
}

func welcomeTemplate(name, company string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1d4ed8;">¡Bienvenido!</h2>
  <p>Hola %s,</p>
  <p>Tu cuenta de empleador para <strong>%s</strong> fue creada exitosamente.</p>
  <p>Ya puedes publicar ofertas y recibir postulaciones con CV adjunto.</p>
  <p style="color: #6b7280; font-size: 13px;">Portal de Empleos Chile</p>
</body>
</html>`, name, company)
}
