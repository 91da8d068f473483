package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"linkdao-marketplace-api/internal/auth"
	"linkdao-marketplace-api/internal/database"
	"linkdao-marketplace-api/internal/middleware"
	"linkdao-marketplace-api/internal/models"
	"linkdao-marketplace-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const peerAddr = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

func newMessageRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	authed := r.Group("", middleware.JWTAuthMiddleware())
	authed.GET("/api/conversations/:address/messages", GetConversation)
	authed.POST("/api/messages", SendMessage)
	return r
}

func TestSendMessage_ConversationIsBidirectional(t *testing.T) {
	r := newMessageRouter(t)

	aliceToken, err := auth.GenerateToken(walletAddr, "alice.eth")
	require.NoError(t, err)
	bobToken, err := auth.GenerateToken(peerAddr, "bob.eth")
	require.NoError(t, err)

	w := postJSON(t, r, "/api/messages", map[string]string{
		"recipientAddress": peerAddr,
		"content":          "hey, is the hoodie still available?",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/messages", map[string]string{
		"recipientAddress": walletAddr,
		"content":          "yes, 25 left",
	}, bobToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// Both sides see the same thread, oldest first.
	for _, tc := range []struct {
		token string
		peer  string
	}{
		{aliceToken, peerAddr},
		{bobToken, walletAddr},
	} {
		w = getJSON(t, r, "/api/conversations/"+tc.peer+"/messages", tc.token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Messages []models.Message `json:"messages"`
			Count    int              `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Count)
		require.Equal(t, "hey, is the hoodie still available?", resp.Messages[0].Content)
		require.Equal(t, "yes, 25 left", resp.Messages[1].Content)
	}
}

func TestSendMessage_NormalizesRecipientCase(t *testing.T) {
	r := newMessageRouter(t)

	token, err := auth.GenerateToken(walletAddr, "alice.eth")
	require.NoError(t, err)

	w := postJSON(t, r, "/api/messages", map[string]string{
		"recipientAddress": strings.ToLower(peerAddr),
		"content":          "gm",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var msg models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	require.Equal(t, peerAddr, msg.RecipientAddress)
}

func TestSendMessage_RejectsSelfAndInvalid(t *testing.T) {
	r := newMessageRouter(t)

	token, err := auth.GenerateToken(walletAddr, "alice.eth")
	require.NoError(t, err)

	w := postJSON(t, r, "/api/messages", map[string]string{
		"recipientAddress": walletAddr,
		"content":          "note to self",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/messages", map[string]string{
		"recipientAddress": "not-an-address",
		"content":          "hello",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
