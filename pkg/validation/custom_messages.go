package validation

func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Name": {
			"required": "Full name is required",
		},
		"Email": {
			"required": "Email is required",
			"email":    "Please enter a valid email address",
		},
		"MobileNumber": {
			"required":  "Mobile number is required",
			"ph_mobile": "Please enter a valid Philippine mobile number",
		},
		"Address": {
			"required": "Address is required",
		},
		"Password": {
			"required": "Password is required",
			"min":      "Password must be at least 6 characters",
		},
	}
	return customValidationMessages[field]
}
