package service

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/fieldinspect/config"
	"github.com/ds124wfegd/fieldinspect/internal/database"
	"github.com/ds124wfegd/fieldinspect/internal/entity"
	"github.com/ds124wfegd/fieldinspect/internal/pkg/canvas"
)

// liveSession is one open editor held in memory. The engine session is
// single-gesture by design; the mutex serializes the HTTP handlers that
// drive it.
type liveSession struct {
	mu        sync.Mutex
	session   *canvas.Session
	box       entity.BoundingBox
	reportID  string
	photoID   string
	signature bool
}

type annotationService struct {
	repo database.ReportRepository
	cfg  config.AppConfig

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

func NewAnnotationService(repo database.ReportRepository, cfg config.AppConfig) AnnotationService {
	return &annotationService{
		repo:     repo,
		cfg:      cfg,
		sessions: make(map[string]*liveSession),
	}
}

func (s *annotationService) BeginPhotoSession(reportID, photoID string, req *entity.BeginSessionRequest) (*entity.BeginSessionResponse, error) {
	report, err := s.repo.FindByID(reportID)
	if err != nil {
		return nil, err
	}

	var photo *entity.Photo
	for i := range report.Photos {
		if report.Photos[i].ID == photoID {
			photo = &report.Photos[i]
			break
		}
	}
	if photo == nil {
		return nil, entity.ErrPhotoNotFound
	}

	reader, err := s.repo.GetPhotoFile(reportID, photoID, database.PhotoOriginal)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	// The decode is the only asynchronous boundary of the editor; the
	// session is created only once the image is fully loaded.
	base, err := imaging.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageNotReady, err)
	}

	natural := entity.Size{Width: photo.Width, Height: photo.Height}
	session := canvas.NewSession(base, natural, req.Viewport, entity.AnnotatorTools)

	return s.register(&liveSession{
		session:  session,
		box:      req.BoundingBox,
		reportID: reportID,
		photoID:  photoID,
	}), nil
}

func (s *annotationService) BeginSignatureSession(reportID string, req *entity.BeginSessionRequest) (*entity.BeginSessionResponse, error) {
	if _, err := s.repo.FindByID(reportID); err != nil {
		return nil, err
	}

	size := entity.Size{Width: s.cfg.SignatureWidth, Height: s.cfg.SignatureHeight}
	if size.Width <= 0 || size.Height <= 0 {
		size = entity.Size{Width: 600, Height: 256}
	}

	return s.register(&liveSession{
		session:   canvas.NewSignatureSession(size),
		box:       req.BoundingBox,
		reportID:  reportID,
		signature: true,
	}), nil
}

func (s *annotationService) register(ls *liveSession) *entity.BeginSessionResponse {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = ls
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"session_id": id,
		"report_id":  ls.reportID,
		"signature":  ls.signature,
	}).Info("annotation session opened")

	return &entity.BeginSessionResponse{
		SessionID:   id,
		PreviewSize: ls.session.PreviewSize(),
	}
}

func (s *annotationService) get(sessionID string) (*liveSession, error) {
	s.mu.RLock()
	ls, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return ls, nil
}

func (s *annotationService) drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// ApplyGestures feeds a batch of raw input events through the stroke
// sampler into the session's action model, in order.
func (s *annotationService) ApplyGestures(sessionID string, events []entity.GestureEvent) (*entity.SessionStateResponse, error) {
	ls, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, ev := range events {
		x, y, ok := canvas.ClientPosition(ev)
		if !ok {
			continue
		}
		p := canvas.ToCanvasPoint(x, y, ls.box, ls.session.PreviewSize())

		switch ev.Type {
		case entity.GestureStart:
			err = ls.session.StartGesture(canvas.Style{Tool: ev.Tool, Color: ev.Color, Width: ev.Width}, p)
		case entity.GestureMove:
			ls.session.MoveGesture(p)
		case entity.GestureEnd:
			ls.session.EndGesture()
		case entity.GestureText:
			err = ls.session.CommitText(canvas.Style{Tool: ev.Tool, Color: ev.Color, Width: ev.Width}, p, ev.Text)
		default:
			err = entity.ErrInvalidGesture
		}
		if err != nil {
			return nil, err
		}
	}

	return s.state(sessionID, ls), nil
}

func (s *annotationService) Undo(sessionID string) (*entity.SessionStateResponse, error) {
	ls, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	ls.session.Undo()
	ls.mu.Unlock()

	return s.state(sessionID, ls), nil
}

func (s *annotationService) state(sessionID string, ls *liveSession) *entity.SessionStateResponse {
	return &entity.SessionStateResponse{
		SessionID:   sessionID,
		PreviewSize: ls.session.PreviewSize(),
		Actions:     ls.session.ActionCount(),
	}
}

// Preview renders the current canvas state, in-progress action included,
// as a PNG at the preview resolution.
func (s *annotationService) Preview(sessionID string, w io.Writer) error {
	ls, err := s.get(sessionID)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	img := ls.session.RenderPreview()
	ls.mu.Unlock()

	return canvas.EncodePNG(w, img)
}

// Save flattens the session at the original resolution, persists the
// encoded raster and discards the session. The action log is consumed:
// annotations burned into the export are no longer editable.
func (s *annotationService) Save(sessionID string) error {
	ls, err := s.get(sessionID)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	var buf bytes.Buffer
	if err := ls.session.Export(&buf); err != nil {
		return err
	}

	report, err := s.repo.FindByID(ls.reportID)
	if err != nil {
		return err
	}

	if ls.signature {
		if err := s.repo.SaveSignatureFile(ls.reportID, &buf); err != nil {
			return fmt.Errorf("failed to save signature: %w", err)
		}
		report.Status = entity.ReportStatusSigned
		report.SignaturePath = s.repo.SignatureFilePath(ls.reportID)
	} else {
		if err := s.repo.SavePhotoFile(ls.reportID, ls.photoID, database.PhotoAnnotated, &buf); err != nil {
			return fmt.Errorf("failed to save annotated photo: %w", err)
		}
		for i := range report.Photos {
			if report.Photos[i].ID == ls.photoID {
				report.Photos[i].AnnotatedPath = s.repo.PhotoFilePath(ls.reportID, ls.photoID, database.PhotoAnnotated)
			}
		}
	}
	report.UpdatedAt = time.Now()

	if err := s.repo.Save(report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.drop(sessionID)
	logrus.WithField("session_id", sessionID).Info("annotation session saved")
	return nil
}

// Cancel discards the session and its action log.
func (s *annotationService) Cancel(sessionID string) error {
	if _, err := s.get(sessionID); err != nil {
		return err
	}
	s.drop(sessionID)
	logrus.WithField("session_id", sessionID).Info("annotation session cancelled")
	return nil
}
