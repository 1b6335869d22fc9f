package i18n

// Message keys.
const (
	PickupRequested     = "pickup.requested"
	PickupAutoApproved  = "pickup.auto_approved"
	PickupRequestFailed = "pickup.request_failed"
	PickupApproved      = "pickup.approved"
	PickupApproveFailed = "pickup.approve_failed"
	PickupRejected      = "pickup.rejected"
	PickupRejectFailed  = "pickup.reject_failed"
	PickupCompleted     = "pickup.completed"
	PickupCompleteFail  = "pickup.complete_failed"
	PickupListFailed    = "pickup.list_failed"

	ErrValidation        = "error.validation"
	ErrInvalidTransition = "error.invalid_transition"
	ErrNotLinked         = "error.not_linked"
	ErrNotFound          = "error.not_found"
	ErrTransport         = "error.transport"
	ErrUnauthorized      = "error.unauthorized"
	ErrForbidden         = "error.forbidden"
	ErrInvalidBody       = "error.invalid_body"
	ErrInternal          = "error.internal"
	ErrIdempotency       = "error.idempotency"
	ErrIdempHeaders      = "error.idempotency_headers"
	ErrIdempReused       = "error.idempotency_reused"

	PreferenceSaved      = "preference.saved"
	AuthorizedAdded      = "authorized.added"
	AuthorizedRemoved    = "authorized.removed"
	AuthorizedNoConsent  = "authorized.no_consent"
	AttendanceCheckedIn  = "attendance.checked_in"
	AttendanceCheckedOut = "attendance.checked_out"
	AttendanceAlreadyIn  = "attendance.already_in"
	AttendanceNotIn      = "attendance.not_in"
	ChatSent             = "chat.sent"
	LoginFailed          = "auth.login_failed"
	UserCreated          = "admin.user_created"
	UserDeleted          = "admin.user_deleted"
	ChildCreated         = "admin.child_created"
	RoleGranted          = "admin.role_granted"
	EmailTaken           = "admin.email_taken"
	WeakPassword         = "admin.weak_password"
	SelfDelete           = "admin.self_delete"
	HasHistory           = "admin.has_history"
	RoleNotHeld          = "auth.role_not_held"
	AuthorizedNotAllowed = "authorized.not_allowed"
	ChatInvalid          = "chat.invalid"
)

var catalogs = map[string]map[string]string{
	"nb": {
		PickupRequested:     "Hentingsvarsel sendt! Personalet vil godkjenne hentingen.",
		PickupAutoApproved:  "Hentingsvarsel sendt og automatisk godkjent.",
		PickupRequestFailed: "Kunne ikke sende hentingsvarsel",
		PickupApproved:      "Henting godkjent!",
		PickupApproveFailed: "Kunne ikke godkjenne henting",
		PickupRejected:      "Henting avvist",
		PickupRejectFailed:  "Kunne ikke avvise henting",
		PickupCompleted:     "Barnet er hentet!",
		PickupCompleteFail:  "Kunne ikke markere som hentet",
		PickupListFailed:    "Kunne ikke hente hentingsliste",

		ErrValidation:        "Ugyldige opplysninger",
		ErrInvalidTransition: "Hentingen er allerede behandlet",
		ErrNotLinked:         "Du er ikke registrert som forelder til dette barnet",
		ErrNotFound:          "Fant ikke forespørselen",
		ErrTransport:         "Tjenesten er midlertidig utilgjengelig",
		ErrUnauthorized:      "Du må logge inn",
		ErrForbidden:         "Ingen tilgang",
		ErrInvalidBody:       "Ugyldig forespørsel",
		ErrInternal:          "Noe gikk galt",
		ErrIdempotency:       "Forespørselen behandles allerede",
		ErrIdempHeaders:      "Mangler eller ugyldig X-Request-Id eller X-Request-At",
		ErrIdempReused:       "X-Request-Id er brukt med et annet innhold",

		PreferenceSaved:      "Innstillingen er lagret",
		AuthorizedAdded:      "{0} er lagt til som hentesperson",
		AuthorizedRemoved:    "Hentesperson fjernet",
		AuthorizedNoConsent:  "Samtykke må gis før personen kan legges til",
		AttendanceCheckedIn:  "{0} krysset inn",
		AttendanceCheckedOut: "{0} krysset ut",
		AttendanceAlreadyIn:  "Barnet er allerede krysset inn",
		AttendanceNotIn:      "Barnet er ikke krysset inn",
		ChatSent:             "Melding sendt",
		LoginFailed:          "Feil e-post eller passord",
		UserCreated:          "Bruker opprettet",
		UserDeleted:          "Bruker slettet",
		ChildCreated:         "Barn registrert",
		RoleGranted:          "Rolle tildelt",
		EmailTaken:           "E-postadressen er allerede registrert",
		WeakPassword:         "Passordet må ha minst 8 tegn med stor og liten bokstav og et tall",
		SelfDelete:           "Du kan ikke slette din egen bruker",
		HasHistory:           "Brukeren har hentehistorikk og kan ikke slettes",
		RoleNotHeld:          "Du har ikke denne rollen",
		AuthorizedNotAllowed: "Du kan ikke endre hentespersoner for dette barnet",
		ChatInvalid:          "Meldingen må være mellom 1 og 1000 tegn",
	},
	"en": {
		PickupRequested:     "Pickup request sent! Staff will approve the pickup.",
		PickupAutoApproved:  "Pickup request sent and approved automatically.",
		PickupRequestFailed: "Could not send pickup request",
		PickupApproved:      "Pickup approved!",
		PickupApproveFailed: "Could not approve pickup",
		PickupRejected:      "Pickup rejected",
		PickupRejectFailed:  "Could not reject pickup",
		PickupCompleted:     "The child has been picked up!",
		PickupCompleteFail:  "Could not mark as picked up",
		PickupListFailed:    "Could not load pickups",

		ErrValidation:        "Invalid input",
		ErrInvalidTransition: "The pickup has already been handled",
		ErrNotLinked:         "You are not registered as a parent of this child",
		ErrNotFound:          "Request not found",
		ErrTransport:         "Service temporarily unavailable",
		ErrUnauthorized:      "Please sign in",
		ErrForbidden:         "Access denied",
		ErrInvalidBody:       "Invalid request",
		ErrInternal:          "Something went wrong",
		ErrIdempotency:       "The request is already being processed",
		ErrIdempHeaders:      "Missing or invalid X-Request-Id or X-Request-At",
		ErrIdempReused:       "X-Request-Id was reused with a different body",

		PreferenceSaved:      "Preference saved",
		AuthorizedAdded:      "{0} added as pickup person",
		AuthorizedRemoved:    "Pickup person removed",
		AuthorizedNoConsent:  "Consent is required before adding the person",
		AttendanceCheckedIn:  "{0} checked in",
		AttendanceCheckedOut: "{0} checked out",
		AttendanceAlreadyIn:  "The child is already checked in",
		AttendanceNotIn:      "The child is not checked in",
		ChatSent:             "Message sent",
		LoginFailed:          "Wrong email or password",
		UserCreated:          "User created",
		UserDeleted:          "User deleted",
		ChildCreated:         "Child registered",
		RoleGranted:          "Role granted",
		EmailTaken:           "Email is already registered",
		WeakPassword:         "Password needs at least 8 characters with upper and lower case letters and a digit",
		SelfDelete:           "You cannot delete your own account",
		HasHistory:           "The user has pickup history and cannot be deleted",
		RoleNotHeld:          "You do not hold this role",
		AuthorizedNotAllowed: "You cannot manage pickup persons for this child",
		ChatInvalid:          "The message must be between 1 and 1000 characters",
	},
}
