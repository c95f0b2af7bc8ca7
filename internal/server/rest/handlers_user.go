package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      *int64 `json:"age"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	session, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Age)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  newUserView(session.User),
		"token": session.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	session, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  newUserView(session.User),
		"token": session.Token,
	})
}

func (s *Server) logout(c *gin.Context) {
	user := currentUser(c)
	if err := s.users.Logout(c.Request.Context(), user.ID, currentToken(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) logoutAll(c *gin.Context) {
	user := currentUser(c)
	if err := s.users.LogoutAll(c.Request.Context(), user.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, newUserView(currentUser(c)))
}

func (s *Server) updateMe(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	user, err := s.users.Update(c.Request.Context(), currentUser(c).ID, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserView(user))
}

func (s *Server) deleteMe(c *gin.Context) {
	userID := currentUser(c).ID

	user, err := s.users.Delete(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	// best effort; avatars stored outside the users table would otherwise
	// be orphaned
	if err := s.avatars.Delete(c.Request.Context(), userID); err != nil {
		s.logger.Warn(c.Request.Context(), "error removing avatar for deleted account",
			"user_id", userID, "error", err)
	}

	c.JSON(http.StatusOK, newUserView(user))
}

var allowedAvatarExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

func (s *Server) uploadAvatar(c *gin.Context) {
	header, err := c.FormFile("avatar")
	if err != nil {
		writeError(c, fmt.Errorf("%w: avatar file is required", common.ErrValidation))
		return
	}
	if header.Size > s.maxUpload {
		writeError(c, fmt.Errorf("%w: avatar must be at most %d bytes", common.ErrValidation, s.maxUpload))
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedAvatarExts[ext]; !ok {
		writeError(c, fmt.Errorf("%w: avatar must be a jpg or png file", common.ErrValidation))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.avatars.Upload(c.Request.Context(), currentUser(c).ID, data); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteAvatar(c *gin.Context) {
	if err := s.avatars.Delete(c.Request.Context(), currentUser(c).ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) getAvatar(c *gin.Context) {
	data, err := s.avatars.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}
