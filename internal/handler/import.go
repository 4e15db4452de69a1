package handler

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"milhas-tracker/internal/logger"
	"milhas-tracker/internal/model"
	"milhas-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImportHandler bulk-loads point balances from a CSV export
// (membro,programa,saldo). Two-phase: preview parses and matches rows
// and hands back a token; confirm applies the cached preview.
type ImportHandler struct {
	db       *gorm.DB
	activity *service.ActivityService
	cache    sync.Map // token -> *previewCache
}

type previewRow struct {
	MemberName  string `json:"memberName"`
	ProgramName string `json:"programName"`
	Points      int64  `json:"points"`
	MemberID    int64  `json:"memberId,omitempty"`
	ProgramID   int64  `json:"programId,omitempty"`
}

type previewCache struct {
	userID    int64
	rows      []previewRow
	createdAt time.Time
}

func NewImportHandler(db *gorm.DB, activity *service.ActivityService) *ImportHandler {
	h := &ImportHandler{db: db, activity: activity}
	// Cleanup expired cache entries every 5 minutes
	go func() {
		for range time.Tick(5 * time.Minute) {
			h.cache.Range(func(k, v any) bool {
				if time.Since(v.(*previewCache).createdAt) > 10*time.Minute {
					h.cache.Delete(k)
				}
				return true
			})
		}
	}()
	return h
}

// Preview handles POST /api/import/preview — parse + match, return preview for confirmation
func (h *ImportHandler) Preview(c *gin.Context) {
	userID := c.GetInt64("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "envie um arquivo CSV"})
		return
	}
	logger.Info("import preview: start", "file", file.Filename, "size", file.Size)

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "falha ao abrir arquivo"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "CSV inválido"})
		return
	}

	var members []model.FamilyMember
	if err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Find(&members).Error; err != nil {
		writeError(c, err)
		return
	}
	var programs []model.LoyaltyProgram
	if err := h.db.WithContext(c.Request.Context()).Find(&programs).Error; err != nil {
		writeError(c, err)
		return
	}

	var rows []previewRow
	unmatchedSet := map[string]bool{}
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		points, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
		if err != nil || points < 0 {
			// Header line or junk row.
			continue
		}
		row := previewRow{
			MemberName:  strings.TrimSpace(rec[0]),
			ProgramName: strings.TrimSpace(rec[1]),
			Points:      points,
			MemberID:    matchMember(rec[0], members),
			ProgramID:   matchProgram(rec[1], programs),
		}
		if row.MemberID == 0 {
			unmatchedSet[row.MemberName] = true
		}
		rows = append(rows, row)
	}
	var unmatched []string
	for name := range unmatchedSet {
		unmatched = append(unmatched, name)
	}

	token := genToken()
	h.cache.Store(token, &previewCache{userID: userID, rows: rows, createdAt: time.Now()})

	logger.Info("import preview: done", "token", token, "rows", len(rows), "unmatched", len(unmatched))
	c.JSON(http.StatusOK, gin.H{
		"token":             token,
		"rows":              rows,
		"unmatched_members": unmatched,
	})
}

// Confirm handles POST /api/import/confirm — apply the cached preview
func (h *ImportHandler) Confirm(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "token ausente"})
		return
	}

	val, ok := h.cache.LoadAndDelete(req.Token)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "prévia expirada, envie o arquivo novamente"})
		return
	}
	cached := val.(*previewCache)
	// The token only works for the user whose preview produced it.
	if c.GetInt64("user_id") != cached.userID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "prévia expirada, envie o arquivo novamente"})
		return
	}
	logger.Info("import confirm: start", "token", req.Token, "rows", len(cached.rows))

	ctx := c.Request.Context()
	imported, merged, skipped := 0, 0, 0
	for _, row := range cached.rows {
		if row.MemberID == 0 || row.ProgramID == 0 {
			skipped++
			continue
		}
		var mp model.MemberProgram
		err := h.db.WithContext(ctx).
			Where("member_id = ? AND program_id = ?", row.MemberID, row.ProgramID).
			First(&mp).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			mp = model.MemberProgram{MemberID: row.MemberID, ProgramID: row.ProgramID, PointsBalance: row.Points}
			if err := h.db.WithContext(ctx).Create(&mp).Error; err != nil {
				writeError(c, err)
				return
			}
			imported++
		case err != nil:
			writeError(c, err)
			return
		default:
			// Last write wins, same as the manual balance update path.
			if err := h.db.WithContext(ctx).Model(&mp).Update("points_balance", row.Points).Error; err != nil {
				writeError(c, err)
				return
			}
			merged++
		}
	}

	h.activity.Record(ctx, cached.userID, "import.confirm", "Importação de saldos",
		map[string]any{"imported": imported, "merged": merged, "skipped": skipped})

	logger.Info("import confirm: done", "imported", imported, "merged", merged, "skipped", skipped)
	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"merged":   merged,
		"skipped":  skipped,
		"total":    len(cached.rows),
	})
}

// --- internal helpers ---

func matchMember(name string, members []model.FamilyMember) int64 {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	for _, m := range members {
		if m.Name == name {
			return m.ID
		}
	}
	lower := strings.ToLower(name)
	for _, m := range members {
		n := strings.ToLower(m.Name)
		if strings.Contains(n, lower) || strings.Contains(lower, n) {
			return m.ID
		}
	}
	return 0
}

func matchProgram(name string, programs []model.LoyaltyProgram) int64 {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	for _, p := range programs {
		if p.Name == name {
			return p.ID
		}
	}
	lower := strings.ToLower(name)
	for _, p := range programs {
		n := strings.ToLower(p.Name)
		if strings.Contains(n, lower) || strings.Contains(lower, n) {
			return p.ID
		}
	}
	return 0
}

func genToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
