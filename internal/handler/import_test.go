package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"milhas-tracker/internal/model"
	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupImportRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	r, db := setupRouter(t)
	importH := NewImportHandler(db, service.NewActivityService(db))
	// The auth middleware is covered elsewhere; import routes get a
	// fixed identity here.
	g := r.Group("/api", func(c *gin.Context) { c.Set("user_id", int64(1)) })
	g.POST("/import/preview", importH.Preview)
	g.POST("/import/confirm", importH.Confirm)
	// Same handler behind a second identity, for token-ownership checks.
	other := r.Group("/api-outro", func(c *gin.Context) { c.Set("user_id", int64(2)) })
	other.POST("/import/confirm", importH.Confirm)
	return r, db
}

func uploadCSV(t *testing.T, r *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "saldos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImportPreviewAndConfirm(t *testing.T) {
	r, db := setupImportRouter(t)

	ana := model.FamilyMember{UserID: 1, Name: "Ana", Role: "primary"}
	require.NoError(t, db.Create(&ana).Error)
	smiles := model.LoyaltyProgram{Name: "Smiles", Company: "GOL"}
	require.NoError(t, db.Create(&smiles).Error)
	require.NoError(t, db.Create(&model.MemberProgram{MemberID: ana.ID, ProgramID: smiles.ID, PointsBalance: 100}).Error)

	csvBody := "membro,programa,saldo\nAna,Smiles,15000\nDesconhecido,Smiles,500\n"
	rec := uploadCSV(t, r, csvBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var preview struct {
		Token     string       `json:"token"`
		Rows      []previewRow `json:"rows"`
		Unmatched []string     `json:"unmatched_members"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	require.NotEmpty(t, preview.Token)
	// The header row is dropped; the two data rows survive.
	require.Len(t, preview.Rows, 2)
	assert.Equal(t, ana.ID, preview.Rows[0].MemberID)
	assert.Equal(t, []string{"Desconhecido"}, preview.Unmatched)

	body := fmt.Sprintf(`{"token":%q}`, preview.Token)
	req := httptest.NewRequest(http.MethodPost, "/api/import/confirm", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Imported int `json:"imported"`
		Merged   int `json:"merged"`
		Skipped  int `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Merged)
	assert.Equal(t, 1, result.Skipped)

	var mp model.MemberProgram
	require.NoError(t, db.Where("member_id = ?", ana.ID).First(&mp).Error)
	assert.Equal(t, int64(15000), mp.PointsBalance)
}

func TestImportConfirm_TokenBoundToOwner(t *testing.T) {
	r, db := setupImportRouter(t)

	ana := model.FamilyMember{UserID: 1, Name: "Ana", Role: "primary"}
	require.NoError(t, db.Create(&ana).Error)
	smiles := model.LoyaltyProgram{Name: "Smiles", Company: "GOL"}
	require.NoError(t, db.Create(&smiles).Error)

	rec := uploadCSV(t, r, "Ana,Smiles,15000\n")
	require.Equal(t, http.StatusOK, rec.Code)
	var preview struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))

	// Another user replaying the token gets refused and nothing is applied.
	body := fmt.Sprintf(`{"token":%q}`, preview.Token)
	req := httptest.NewRequest(http.MethodPost, "/api-outro/import/confirm", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var enrollments int64
	require.NoError(t, db.Model(&model.MemberProgram{}).Count(&enrollments).Error)
	assert.Equal(t, int64(0), enrollments)
}

func TestImportConfirm_ExpiredToken(t *testing.T) {
	r, _ := setupImportRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import/confirm", bytes.NewReader([]byte(`{"token":"inexistente"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportPreview_FuzzyMemberMatch(t *testing.T) {
	r, db := setupImportRouter(t)

	require.NoError(t, db.Create(&model.FamilyMember{UserID: 1, Name: "Ana Clara", Role: "extended"}).Error)
	require.NoError(t, db.Create(&model.LoyaltyProgram{Name: "LATAM Pass", Company: "LATAM"}).Error)

	rec := uploadCSV(t, r, "Ana,LATAM,2000\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var preview struct {
		Rows []previewRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	require.Len(t, preview.Rows, 1)
	assert.NotZero(t, preview.Rows[0].MemberID, "substring match should resolve Ana -> Ana Clara")
	assert.NotZero(t, preview.Rows[0].ProgramID, "substring match should resolve LATAM -> LATAM Pass")
}
