package page

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/media"
	"github.com/neexbeast/travelviz/internal/session"
	"github.com/neexbeast/travelviz/internal/storage"
)

// RecentWindow is how long a previous upload is offered again.
const RecentWindow = 24 * time.Hour

// UploadResult is the outcome of an upload.
type UploadResult struct {
	Photo   session.PhotoRef `json:"photo"`
	Notices []Notice         `json:"notices"`
}

// RecentResult is a previous upload restored into the session.
type RecentResult struct {
	Upload  *storage.LastUpload `json:"upload"`
	Notices []Notice            `json:"notices,omitempty"`
}

// Upload controls the photo upload page.
type Upload struct {
	src      datasource.Source
	sessions Sessions
	prefs    PreferenceRepo
	progress *Tracker
	now      func() time.Time
	log      *slog.Logger
}

// NewUpload constructs the upload controller.
func NewUpload(src datasource.Source, sessions Sessions, prefs PreferenceRepo, log *slog.Logger) *Upload {
	return &Upload{
		src:      src,
		sessions: sessions,
		prefs:    prefs,
		progress: NewTracker(ProgressRetention),
		now:      time.Now,
		log:      log,
	}
}

// Upload validates f, sends it to the data source and makes it the session's
// current photo. Invalid files fail before any network call.
func (u *Upload) Upload(ctx context.Context, sid, cid string, f *media.File) (*UploadResult, error) {
	if err := media.ValidateFile(f); err != nil {
		return nil, err
	}

	u.progress.start(sid)
	photo := backend.Photo{
		FileName:    f.Name,
		ContentType: media.DetectType(f),
		Content:     f.Content,
	}

	url, err := u.src.UploadPhoto(ctx, photo, func(pct float64) { u.progress.set(sid, pct) })
	u.progress.finish(sid, err)
	if err != nil {
		u.log.Error("photo upload failed", "file", f.Name, "err", err)
		return nil, fail(fmt.Sprintf("Upload failed: %s", err.Error()), err)
	}

	ref := session.PhotoRef{URL: url, FileName: f.Name}
	if err := u.sessions.Set(ctx, sid, session.KeyUploadedPhoto, ref); err != nil {
		return nil, fmt.Errorf("storing uploaded photo: %w", err)
	}

	lu := storage.LastUpload{PhotoURL: url, FileName: f.Name, Timestamp: u.now().UTC()}
	if err := u.prefs.SaveLastUpload(ctx, cid, lu); err != nil {
		u.log.Warn("saving last upload failed", "client", cid, "err", err)
	}

	res := &UploadResult{Photo: ref, Notices: modeNotices(u.src)}
	if u.src.Mode() == datasource.ModeDemo {
		res.Notices = append(res.Notices, notice(Success, "Demo mode: Photo processed successfully!"))
	} else {
		res.Notices = append(res.Notices, notice(Success, "Photo uploaded successfully!"))
	}
	return res, nil
}

// Progress returns the progress of the session's latest upload.
func (u *Upload) Progress(sid string) (Progress, bool) {
	return u.progress.Get(sid)
}

// Clear removes the session's photo.
func (u *Upload) Clear(ctx context.Context, sid string) ([]Notice, error) {
	if err := u.sessions.Delete(ctx, sid, session.KeyUploadedPhoto); err != nil {
		return nil, fmt.Errorf("clearing uploaded photo: %w", err)
	}
	u.progress.forget(sid)
	return []Notice{notice(Success, "Photo removed")}, nil
}

// Recent returns the client's last upload when it is younger than
// RecentWindow and makes it the session's photo again. A nil Upload means
// there is nothing to restore.
func (u *Upload) Recent(ctx context.Context, sid, cid string) (*RecentResult, error) {
	p, err := u.prefs.GetPreferences(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("loading last upload: %w", err)
	}
	if p == nil || p.LastUpload == nil || u.now().Sub(p.LastUpload.Timestamp) >= RecentWindow {
		return &RecentResult{}, nil
	}

	ref := session.PhotoRef{URL: p.LastUpload.PhotoURL, FileName: p.LastUpload.FileName}
	if err := u.sessions.Set(ctx, sid, session.KeyUploadedPhoto, ref); err != nil {
		return nil, fmt.Errorf("restoring uploaded photo: %w", err)
	}

	return &RecentResult{
		Upload:  p.LastUpload,
		Notices: []Notice{notice(Success, "Recent upload loaded successfully!")},
	}, nil
}
