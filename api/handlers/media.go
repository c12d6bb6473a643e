package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopsync/shopsync-api/config"
	"github.com/shopsync/shopsync-api/databases"
	"github.com/shopsync/shopsync-api/models"
)

const mediaFolder = "vehicle-photos"

// maxUploadBytes caps in-memory multipart parsing
const maxUploadBytes = 32 << 20

// MediaUploader is the slice of the Cloudinary upload API used here,
// extracted so tests can stub the blob sink
type MediaUploader interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// Media exported for testing purposes
type Media struct {
	DB       databases.MediaDatabase
	Uploader MediaUploader
}

// UploadMediaHandler pushes an uploaded photo or video to the blob sink and
// records its public URL against the vehicle. The media type is derived from
// the upload's content type.
func (m Media) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	if m.Uploader == nil {
		config.ErrorStatusFromErr("media storage not configured", w,
			models.NewInternalError("no blob sink available", nil))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("failed to read uploaded file", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	mediaType := models.MediaTypeVideo
	if strings.HasPrefix(contentType, "image") {
		mediaType = models.MediaTypePhoto
	}

	publicID := fmt.Sprintf("%s_%s", vehicleID, uuid.NewString())
	uploadResp, err := m.Uploader.Upload(r.Context(), file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       mediaFolder,
		ResourceType: "auto",
	})
	if err != nil {
		config.ErrorStatusFromErr("failed to upload media", w,
			models.NewInternalError("blob sink rejected upload", err))
		return
	}

	media := models.Media{
		ID:         primitive.NewObjectID(),
		VehicleID:  vehicleID,
		UserID:     r.FormValue("user_id"),
		MediaType:  mediaType,
		MediaURL:   uploadResp.SecureURL,
		Caption:    r.FormValue("caption"),
		UploadedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := m.DB.InsertOne(r.Context(), media); err != nil {
		config.ErrorStatusFromErr("failed to record media", w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.MediaUploadResponse{
		Success:  true,
		MediaURL: media.MediaURL,
		MediaID:  media.ID.Hex(),
	})
}

// MediaByVehicleIDHandler returns a vehicle's media, newest first
func (m Media) MediaByVehicleIDHandler(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicle_id"]

	dbResp, err := m.DB.Find(r.Context(), bson.M{"vehicle_id": vehicleID},
		options.Find().SetSort(bson.M{"uploaded_at": -1}))
	if err != nil {
		config.ErrorStatusFromErr("failed to get media", w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Media{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
