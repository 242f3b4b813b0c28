package constants

// Roles de usuario (conjunto cerrado)
const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_TECNICO = "TECNICO"
)

// Estado de pago de una reparación (conjunto cerrado)
const (
	PAGO_PENDIENTE = "PENDIENTE"
	PAGO_PAGADO    = "PAGADO"
)

// Estado de la reparación (vocabulario abierto, estos son los habituales)
const (
	ESTADO_PENDIENTE = "Pendiente"
	ESTADO_EN_CURSO  = "En curso"
	ESTADO_TERMINADO = "Terminado"
	ESTADO_ENTREGADO = "Entregado"
)

// Método de pago registrado por el webhook de Stripe
const METODO_PAGO_STRIPE = "Tarjeta (Stripe)"

// Mensajes de error
const (
	ERROR_INTERNAL_ERROR       = "Error interno del servidor"
	ERROR_INPUT                = "Datos de entrada no válidos"
	ERROR_CREATE               = "No se pudo crear el registro"
	ERROR_EDIT                 = "No se pudo actualizar el registro"
	ERROR_PARSE_DATA_TO_LOCALS = "Error al leer los datos validados"
	NOT_FOUND_RECORDS          = "No se encontraron registros"
	NOT_ADMIN                  = "Se requiere rol de administrador"
	ACCOUNT_NOT_PERMISSION     = "No tienes permisos para esta operación"

	MISSING_LOGIN_INPUT = "Usuario y contraseña son obligatorios"
	INVALID_USERNAME    = "El usuario no existe"
	INVALID_PASSWORD    = "Contraseña incorrecta"
	ACCOUNT_NOT_ACTIVE  = "La cuenta está desactivada"

	CAN_NOT_HASH_PASSWORD     = "No se pudo cifrar la contraseña"
	DATA_INPUT_IS_NOT_NUMBER  = "El identificador debe ser numérico"
	PHONE_NUMBER_EXISTS       = "El teléfono ya está registrado"
	EMAIL_EXISTS              = "El email ya está registrado"
	CLIENTE_CON_REPARACIONES  = "El cliente tiene reparaciones asociadas"
	REPARACION_NO_ENCONTRADA  = "La reparación no existe"
	REPARACION_YA_PAGADA      = "La reparación ya está pagada"
	REPARACION_SIN_PRECIO     = "La reparación no tiene precio asignado"
	METODO_PAGO_OBLIGATORIO   = "El método de pago es obligatorio"
	EMAIL_NO_VALIDO           = "El email no es válido"
	EMAIL_NO_COINCIDE         = "El email no coincide con el del cliente"
	CLIENTE_SIN_EMAIL         = "El cliente no tiene email registrado"
	PAGOS_NO_DISPONIBLES      = "El pago online no está disponible en este momento"
	PRECIO_NO_VALIDO          = "La reparación no tiene un importe válido"
	ERROR_CREAR_SESION_PAGO   = "No se pudo iniciar el pago"
	TARJETA_RECHAZADA         = "La tarjeta fue rechazada por el procesador"
	PROCESADOR_NO_DISPONIBLE  = "El procesador de pagos no está disponible, inténtalo más tarde"
	PETICION_PAGO_NO_VALIDA   = "El procesador rechazó la petición de pago"
	CREDENCIALES_PROCESADOR   = "Credenciales del procesador de pagos no válidas"
	LIMITE_PROCESADOR         = "Demasiadas peticiones al procesador de pagos"
)
