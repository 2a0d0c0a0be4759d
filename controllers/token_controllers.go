package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Waqasabid99/rms-backend/middlewares"
	"github.com/Waqasabid99/rms-backend/utils"
)

// roomTokenTTL is how long an issued realtime-session token stays valid.
const roomTokenTTL = 10 * time.Minute

// TokenController issues short-lived realtime room tokens for the video
// session service. The token is a signed JWT carrying a room-join grant,
// scoped to a room derived from the caller's email.
type TokenController struct {
	apiKey    string
	apiSecret string
}

func NewTokenController() *TokenController {
	return &TokenController{
		apiKey:    os.Getenv("LIVEKIT_API_KEY"),
		apiSecret: os.Getenv("LIVEKIT_API_SECRET"),
	}
}

type videoGrant struct {
	RoomJoin bool   `json:"roomJoin"`
	Room     string `json:"room"`
}

type roomTokenClaims struct {
	Video    videoGrant `json:"video"`
	Metadata string     `json:"metadata,omitempty"`
	jwt.RegisteredClaims
}

// roomNameFromEmail derives a unique room name from the local part of the
// email plus a timestamp.
func roomNameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	var b strings.Builder
	for _, r := range local {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return fmt.Sprintf("%s_%d", b.String(), time.Now().UnixMilli())
}

func participantNameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return local
	}
	return strings.ToUpper(local[:1]) + local[1:]
}

func (tc *TokenController) GetToken(c *gin.Context) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok || identity.Email == "" {
		utils.RespondError(c, http.StatusBadRequest, "User email not found in request", nil)
		return
	}

	roomName := roomNameFromEmail(identity.Email)
	participantName := participantNameFromEmail(identity.Email)

	metadata, _ := json.Marshal(gin.H{"email": identity.Email})
	now := time.Now()
	claims := roomTokenClaims{
		Video:    videoGrant{RoomJoin: true, Room: roomName},
		Metadata: string(metadata),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tc.apiKey,
			Subject:   participantName,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(roomTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tc.apiSecret))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error generating token", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token generated successfully", gin.H{
		"token":           token,
		"roomName":        roomName,
		"participantName": participantName,
		"email":           identity.Email,
	})
}
