package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	serviceRepo "citizenhub/database/repository/service"
	"citizenhub/models"
	"citizenhub/services/directory"
	"citizenhub/services/review"
	"citizenhub/services/user"
	"citizenhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report binding failures under their JSON names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognised is
// a 500.
func respondError(c *gin.Context, action string, err error) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		utils.JSONFieldErrors(c, "Validation failed", verrs.Fields())
	case errors.Is(err, directory.ErrServiceNotFound), errors.Is(err, serviceRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Service not found", "")
	case errors.Is(err, user.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	case errors.Is(err, directory.ErrServiceNotActive):
		utils.JSONError(c, http.StatusBadRequest, "Service is not active", err.Error())
	case errors.Is(err, directory.ErrSlugTaken),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, review.ErrDuplicateReview):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, directory.ErrPermanentDeleteDenied), errors.Is(err, directory.ErrPermanentDeleteDisabled):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
	default:
		utils.JSONInternalError(c, action, err)
	}
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// respondBindError answers 400. Tag violations are reported per field.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		utils.JSONFieldErrors(c, "Validation failed", fields)
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

// fieldPath drops the root struct name from the namespace, leaving
// "profile.age" or "documents[0].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "e164":
		return fe.Field() + " must be an E.164 phone number"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}
