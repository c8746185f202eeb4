package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/internal/xio"
)

// EventQRCode renders the activity share link as a PNG for posters and chat
// groups.
func (h *handler) EventQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clubID, ok := pathID(r, "club_id")
	if !ok {
		h.NotFound(w, r)
		return
	}
	eventID, ok := pathID(r, "event_id")
	if !ok {
		h.NotFound(w, r)
		return
	}

	qr, err := qrcode.New(fmt.Sprintf("%s/clubs/%d/events/%d", h.Cfg.Server.PublicURL, clubID, eventID))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create qrcode", slog.Any("err", err))
		http.Error(w, "Failed to create qrcode", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")

	qrW := standard.NewWithWriter(xio.NewResponseWriteCloser(w),
		standard.WithBgTransparent(),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)

	defer func() {
		_ = qrW.Close()
	}()
	if err = qr.Save(qrW); err != nil {
		slog.ErrorContext(ctx, "Failed to save qrcode", slog.Any("err", err))
	}
}
