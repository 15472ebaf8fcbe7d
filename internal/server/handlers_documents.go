package server

import (
	"io"
	"net/http"

	"github.com/jonathan/scholarship-tracker/internal/db"
)

// maxDocumentBytes caps uploaded file size at 10 MB.
const maxDocumentBytes = 10 << 20

// ---------------------------------------------------------------------
// Document Handlers
// ---------------------------------------------------------------------

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	kind := r.FormValue("kind")
	if kind != db.DocumentKindTranscript && kind != db.DocumentKindCertificate {
		s.errorResponse(w, http.StatusBadRequest, "kind must be transcript or certificate")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if len(content) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id, err := s.db.CreateDocument(r.Context(), db.DocumentInput{
		UserID:      userID,
		Kind:        kind,
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Transcript uploads complete the documents step of onboarding
	if err := s.db.MarkDocumentsUploaded(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	docs, err := s.db.ListDocumentsByUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUserID(w, r)
	if !ok {
		return
	}

	docID, ok := pathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, err := s.db.GetDocument(r.Context(), docID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil || doc.UserID != userID {
		// Hide other users' documents behind a 404
		s.errorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+doc.Filename+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
