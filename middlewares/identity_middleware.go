package middlewares

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Waqasabid99/rms-backend/models"
	"github.com/Waqasabid99/rms-backend/utils"
)

// IdentityVerifier implements the external auth scheme: it validates
// RS256 identity tokens issued by a third-party provider against the
// provider's published signing certificates and attaches a minimal
// identity (subject id, email) to the request.
type IdentityVerifier struct {
	certsURL string
	issuer   string
	audience string
	client   *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// certCacheTTL bounds how long fetched signing certificates are reused
// before they are refreshed from the provider.
const certCacheTTL = time.Hour

func NewIdentityVerifier() *IdentityVerifier {
	return &IdentityVerifier{
		certsURL: os.Getenv("IDP_CERTS_URL"),
		issuer:   os.Getenv("IDP_ISSUER"),
		audience: os.Getenv("IDP_AUDIENCE"),
		client:   &http.Client{Timeout: 10 * time.Second},
		keys:     map[string]*rsa.PublicKey{},
	}
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *IdentityVerifier) keyForKid(kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Since(v.fetchedAt) < certCacheTTL
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signing certificate for kid %q", kid)
	}
	return key, nil
}

// refreshKeys pulls the provider's certificate map (kid → PEM-encoded
// x509 certificate) and caches the contained public keys.
func (v *IdentityVerifier) refreshKeys() error {
	resp, err := v.client.Get(v.certsURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("certificate endpoint returned %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return err
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		block, _ := pem.Decode([]byte(pemCert))
		if block == nil {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		if pub, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keys[kid] = pub
		}
	}
	if len(keys) == 0 {
		return errors.New("certificate endpoint returned no usable keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
	return nil
}

func (v *IdentityVerifier) verify(tokenString string) (*identityClaims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &identityClaims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		return v.keyForKid(kid)
	}, parserOpts...)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired identity token")
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("invalid identity token claims")
	}
	return claims, nil
}

// Middleware is the gin handler form of the verifier.
func (v *IdentityVerifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: Missing token", nil)
			c.Abort()
			return
		}

		claims, err := v.verify(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Unauthorized: Invalid or expired token", nil)
			c.Abort()
			return
		}

		setIdentity(c, models.Identity{
			UID:   claims.Subject,
			Email: claims.Email,
		})
		c.Next()
	}
}
