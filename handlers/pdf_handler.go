package handlers

import (
	"fmt"
	"net/http"

	"studenthub/auth"
	"studenthub/repository"
	"studenthub/utils"
)

type PDFHandler struct {
	Education    repository.EducationRepository
	TemplatePath string
}

// ExportProfile renders the caller's education profile as a downloadable PDF.
func (h *PDFHandler) ExportProfile(w http.ResponseWriter, r *http.Request) {
	me := auth.FromContext(r)

	education, err := h.Education.GetEducationByUser(me.ID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if education == nil {
		writeError(w, http.StatusNotFound, "Education profile not found")
		return
	}

	templatePath := h.TemplatePath
	if templatePath == "" {
		templatePath = "templates/profile_template.html"
	}

	pdfBytes, err := utils.GenerateProfilePDF(me, education, templatePath)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="profile_%s.pdf"`, me.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
