package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopsync/shopsync-api/config"
)

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct {
	Config config.Config
}

// GenerateSignature generates a signature for direct browser uploads to
// Cloudinary so large videos can skip this server
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(c.Config.CloudinaryAPISecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + c.Config.CloudinaryUploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
