package utils

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("phone", validatePhone)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("pin", validatePin)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("robot_status", validateRobotStatus)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	re := regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	return re.MatchString(phone)
}

func validatePin(fl validator.FieldLevel) bool {
	pin := fl.Field().String()
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validateRobotStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	validStatuses := []string{"available", "busy"}

	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}
