package api

// User-facing messages. The platform's users read Spanish.
const (
	msgMissingToken       = "No se encontró el token de acceso"
	msgMissingID          = "ID no proporcionado"
	msgUnexpected         = "Ocurrió un error inesperado. Por favor, intenta de nuevo."
	msgSessionExpired     = "Sesión expirada. Por favor, inicie sesión nuevamente."
	msgLoginForbidden     = "No tienes permiso para acceder. Verifica tu correo o contacta al administrador."
	msgInvalidCredentials = "Credenciales inválidas. Por favor, verifica tu correo y contraseña."
	msgLoginFailed        = "Ocurrió un error al iniciar sesión."
	msgRegisterFailed     = "Error inesperado durante el registro"
	msgVerifyFailed       = "Error al verificar el correo"

	msgCreateProposal   = "Error al crear la propuesta"
	msgUpdateProposal   = "Error al actualizar la propuesta"
	msgDeleteProposal   = "Error al eliminar la propuesta"
	msgListProposals    = "Error inesperado al obtener las propuestas"
	msgToggleVisibility = "Error al actualizar la visibilidad de la propuesta"

	msgListAreas     = "Error inesperado al obtener las áreas"
	msgListSubjects  = "Error inesperado al obtener las materias"
	msgGetProfile    = "Error al obtener el perfil"
	msgUpdateProfile = "Error al actualizar el perfil"

	msgSearchProfessors = "Error al buscar profesores"
	msgSearchStudents   = "Error al buscar alumnos"

	msgChangePassword = "Error al cambiar la contraseña"
	msgResetRequest   = "Error al enviar el correo de restablecimiento"
	msgResetPassword  = "Error al restablecer la contraseña"

	msgAdminList    = "Error al obtener los datos de administración"
	msgAdminCreate  = "Error al crear el registro"
	msgAdminUpdate  = "Error al actualizar el registro"
	msgAdminMetrics = "Error al obtener las métricas"

	msgConversation = "Error al iniciar la conversación"
	msgReport       = "Error al enviar reporte"
)
