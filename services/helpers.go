package services

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/shoaibhussa1n/Futsal-Connect/models"
	"github.com/shoaibhussa1n/Futsal-Connect/storage"
)

// objectKey builds a bucket key like "teams/<id>/<random>.png" from the
// uploaded file's original name.
func objectKey(prefix, ownerID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return prefix + "/" + ownerID + "/" + uuid.NewString() + ext
}

func publicURL(uploader storage.FileUploader, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	url := uploader.GetPublicURL(*key)
	if url == "" {
		return nil
	}
	return &url
}

func presentProfile(uploader storage.FileUploader, profile *models.Profile) {
	if profile == nil {
		return
	}
	profile.AvatarURL = publicURL(uploader, profile.AvatarKey)
}

func presentPlayer(uploader storage.FileUploader, player *models.Player) {
	if player == nil {
		return
	}
	player.PhotoURL = publicURL(uploader, player.PhotoKey)
	presentProfile(uploader, player.Profile)
}

func presentTeam(uploader storage.FileUploader, team *models.Team) {
	if team == nil {
		return
	}
	team.LogoURL = publicURL(uploader, team.LogoKey)
}
