package handlers

import (
	"net/http"
	"strings"

	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

// TokenVerifier parses a bearer token into the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (*services.UserIdentity, error)
}

// CasdoorVerifier verifies tokens against the Casdoor auth provider.
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(client *casdoorsdk.Client) *CasdoorVerifier {
	return &CasdoorVerifier{client: client}
}

func (v *CasdoorVerifier) Verify(token string) (*services.UserIdentity, error) {
	claims, err := v.client.ParseJwtToken(token)
	if err != nil {
		return nil, err
	}
	return &services.UserIdentity{
		ID:          claims.User.Id,
		Username:    claims.User.Name,
		DisplayName: claims.User.DisplayName,
		Email:       claims.User.Email,
		IsAdmin:     claims.User.IsAdmin,
	}, nil
}

// AuthMiddleware authenticates the request and stores the identity in both the
// gin context and the request context.
func AuthMiddleware(verifier TokenVerifier, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing authorization header",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid authorization header",
			})
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			logger.Warn("Token verification failed", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", identity.ID)
		c.Set("username", identity.Username)
		c.Set("is_admin", identity.IsAdmin)
		c.Request = c.Request.WithContext(
			services.WithUserIdentity(c.Request.Context(), *identity),
		)

		c.Next()
	}
}

// AdminMiddleware allows only authenticated admins through.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}
