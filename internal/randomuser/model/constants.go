package model

const (
	// MaxBatchSize is the most records the random user API returns per call.
	MaxBatchSize = 1000

	// MaxLoadNumber bounds a single load request from the form or the API.
	MaxLoadNumber = 1000

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Raw record keys requested from the random user API.
const (
	FieldGender   = "gender"
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldLocation = "location"
	FieldPicture  = "picture"
)

// RequiredRawFields is also the `inc` field list sent to the API, in order.
var RequiredRawFields = []string{FieldGender, FieldName, FieldPhone, FieldEmail, FieldLocation, FieldPicture}
