package httpapi

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"marketer/internal/domain"
	"marketer/internal/importer"
)

func (a *API) handleListContacts(w http.ResponseWriter, r *http.Request) {
	filter := domain.ContactFilter{
		Search:      r.URL.Query().Get("search"),
		OptInStatus: domain.OptInStatus(r.URL.Query().Get("optInStatus")),
	}
	contacts := a.Contacts.List(filter)
	respondOK(w, map[string]any{"contacts": contacts, "total": len(contacts)})
}

func (a *API) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, domain.Validation("no file uploaded"))
		return
	}
	defer file.Close()
	// Multipart uploads may spill to temp files; drop them on every
	// exit path.
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	var rows []importer.Row
	if strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		rows, err = importer.ParseXLSX(file)
	} else {
		rows, err = importer.ParseCSV(file)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := a.Importer.Import(rows, a.now())
	if err != nil {
		respondError(w, err)
		return
	}
	payload := map[string]any{
		"imported": res.Imported,
		"created":  res.Created,
		"updated":  res.Updated,
		"contacts": res.Contacts,
	}
	if len(res.Errors) > 0 {
		payload["errors"] = res.Errors
	}
	respondOK(w, payload)
}

func (a *API) handleExportContacts(w http.ResponseWriter, r *http.Request) {
	contacts := a.Contacts.List(domain.ContactFilter{})

	// Render fully before touching the response so a workbook error
	// can still produce a JSON error body.
	var buf bytes.Buffer
	if err := importer.WriteXLSX(&buf, contacts); err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (a *API) handleOptIn(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}
	contact, err := a.Contacts.SetOptIn(id, a.now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"contact": contact})
}

func (a *API) handleOptOut(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}
	contact, err := a.Contacts.SetOptOut(id, a.now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"contact": contact})
}

func (a *API) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := contactID(w, r)
	if !ok {
		return
	}
	if err := a.Contacts.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"deleted": id})
}

func contactID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, domain.Validation("invalid contact id"))
		return 0, false
	}
	return id, true
}
