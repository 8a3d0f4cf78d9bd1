package server

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// registerRequest mirrors the registration form. Tags follow the account rules of the web service.
type registerRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128,notnumeric"`
	Password2 string `json:"password2" validate:"required"`
}

var validationMessages = map[string]string{
	"required":   "This field is required.",
	"email":      "Enter a valid email address.",
	"username":   "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.",
	"notnumeric": "This password is entirely numeric.",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("notnumeric", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) != ""
	})
	return v
}

var validate = newValidator()

// fieldMessage renders a validator failure the way form errors read in the web client.
func fieldMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return "This password is too short. It must contain at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	}
	return "Enter a valid value."
}

// fieldErrors maps json field names to their messages, like a form serializer.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (r registerRequest) validate(store *Store) fieldErrors {
	errs := fieldErrors{}

	var verrs validator.ValidationErrors
	if err := validate.Struct(r); errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.add(fe.Field(), fieldMessage(fe))
		}
	}

	if _, bad := errs["username"]; !bad && store.UsernameTaken(r.Username) {
		errs.add("username", "A user with this username already exists.")
	}
	if _, bad := errs["email"]; !bad && store.EmailTaken(r.Email) {
		errs.add("email", "A user with this email already exists.")
	}

	// Cross-field checks run only once every field is valid on its own.
	if len(errs) == 0 && r.Password != r.Password2 {
		errs.add("password2", "Password fields didn't match.")
	}
	return errs
}

type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type authBody struct {
	Message string   `json:"message"`
	User    userBody `json:"user"`
}

type statusBody struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *userBody `json:"user,omitempty"`
}

// AuthHandler serves the cookie based auth endpoints.
type AuthHandler struct {
	backend *Backend
}

func (h *AuthHandler) pattern(method, p string) string {
	return method + " " + h.backend.path("/auth/"+p+"/{$}")
}

// Routes implements [Handler].
func (h *AuthHandler) Routes() []string {
	return []string{
		h.pattern(http.MethodPost, "login"),
		h.pattern(http.MethodPost, "register"),
		h.pattern(http.MethodPost, "refresh"),
		h.pattern(http.MethodPost, "logout"),
		h.pattern(http.MethodGet, "status"),
	}
}

// ServeHTTP implements [http.Handler], branching on the matched pattern.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case h.pattern(http.MethodPost, "login"):
		h.login(w, r)
	case h.pattern(http.MethodPost, "register"):
		h.register(w, r)
	case h.pattern(http.MethodPost, "refresh"):
		h.refresh(w, r)
	case h.pattern(http.MethodPost, "logout"):
		h.backend.RequireUser(http.HandlerFunc(h.logout)).ServeHTTP(w, r)
	case h.pattern(http.MethodGet, "status"):
		h.status(w, r)
	default:
		writeJSON(w, http.StatusNotFound, detail("Not found."))
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeBody(r, &creds); err != nil {
		writeJSON(w, http.StatusBadRequest, detail(err.Error()))
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("Username and password are required"))
		return
	}

	user, ok := h.backend.store.Authenticate(creds.Username, creds.Password)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid credentials"))
		return
	}

	pair, err := h.backend.tokens.Pair(user.ID)
	if err != nil {
		h.backend.logger.Error("failed to issue tokens", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, detail("A server error occurred."))
		return
	}

	h.backend.setTokenCookies(w, pair)
	writeJSON(w, http.StatusOK, authBody{
		Message: "Login successful",
		User:    userBody{ID: user.ID, Username: user.Username},
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail(err.Error()))
		return
	}

	if errs := req.validate(h.backend.store); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}

	user, err := h.backend.store.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, fieldErrors{"username": {"A user with this username already exists."}})
		return
	}

	pair, err := h.backend.tokens.Pair(user.ID)
	if err != nil {
		h.backend.logger.Error("failed to issue tokens", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, detail("A server error occurred."))
		return
	}

	h.backend.logger.Info("registered user", "user_id", user.ID, "username", user.Username)
	h.backend.setTokenCookies(w, pair)
	writeJSON(w, http.StatusCreated, authBody{
		Message: "Registration successful",
		User:    userBody{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody("Refresh token not found"))
		return
	}

	userID, pair, err := h.backend.tokens.Rotate(c.Value)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody(err.Error()))
		return
	}
	if _, ok := h.backend.store.User(userID); !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody(ErrTokenInvalid.Error()))
		return
	}

	h.backend.setTokenCookies(w, pair)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token refreshed successfully"})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		if claims, err := h.backend.tokens.Validate(c.Value, refreshType); err == nil {
			h.backend.tokens.Revoke(claims)
		}
	}

	clearTokenCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) status(w http.ResponseWriter, r *http.Request) {
	id, ok := h.backend.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusOK, statusBody{IsAuthenticated: false})
		return
	}

	user, _ := h.backend.store.User(id)
	writeJSON(w, http.StatusOK, statusBody{
		IsAuthenticated: true,
		User:            &userBody{ID: user.ID, Username: user.Username},
	})
}
