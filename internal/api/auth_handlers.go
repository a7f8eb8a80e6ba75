package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gohoras/internal/auth"
	"gohoras/internal/errors"
	"gohoras/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Role         models.Role `json:"role"`
	ProfilePhoto string      `json:"profilePhoto"`
	Token        string      `json:"token"`
}

func (s *Server) authResponseFor(user *models.User) (*authResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}
	return &authResponse{
		ID:           user.ID,
		Username:     user.Username,
		Role:         user.Role,
		ProfilePhoto: user.ProfilePhoto,
		Token:        token,
	}, nil
}

// register creates a new user account and signs them in
func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}
	if req.Username == "" || len(req.Username) > 50 {
		writeError(c, errors.ValidationError("invalid username"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	resp, err := s.authResponseFor(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// login authenticates a user and returns a fresh token
func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}
	if req.Username == "" || len(req.Username) > 50 {
		writeError(c, errors.Unauthorized("invalid credentials"))
		return
	}

	user, err := s.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// do not reveal whether the username exists
		writeError(c, errors.Unauthorized("invalid credentials"))
		return
	}
	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		writeError(c, err)
		return
	}

	resp, err := s.authResponseFor(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getProfile returns the authenticated user's profile
func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// updateProfile changes username, password and/or profile photo. The form
// is multipart so the photo can ride along.
func (s *Server) updateProfile(c *gin.Context) {
	user := currentUser(c)

	if username := c.PostForm("username"); username != "" {
		if len(username) > 50 {
			writeError(c, errors.ValidationError("invalid username"))
			return
		}
		user.Username = username
	}
	if password := c.PostForm("password"); password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			writeError(c, err)
			return
		}
		user.PasswordHash = hash
	}
	if fh, err := c.FormFile("profilePhoto"); err == nil {
		path, err := s.uploads.SavePhoto(fh)
		if err != nil {
			writeError(c, err)
			return
		}
		user.ProfilePhoto = path
	}

	if err := s.users.Update(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	resp, err := s.authResponseFor(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listUsers returns every account (admin only)
func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
