package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"studenthub/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ProfilePDFData feeds the education-profile export template.
type ProfilePDFData struct {
	User      *models.User
	Education *models.Education
	Generated string
}

// GenerateProfilePDF renders a user's education profile to an A4 PDF using
// headless Chrome.
func GenerateProfilePDF(user *models.User, education *models.Education, templatePath string) ([]byte, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, err
	}

	data := ProfilePDFData{
		User:      user,
		Education: education,
		Generated: time.Now().Format("02-Jan-2006"),
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.profile-sheet {
			page-break-inside: avoid;
		}
		</style>
		</head>
		<body><div class='profile-sheet'>` + body.String() + `</div></body></html>`

	// Chrome only renders file:// or http(s) URLs, so stage a temp file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "profile_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
