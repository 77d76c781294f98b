package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
	"inkwell/internal/service"
)

// GetPosts handles GET /api/posts — the public front page, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context(), s.currentUser(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts": newPostSummaries(posts, time.Now()),
	})
}

// GetPost handles GET /api/posts/:id — public detail with comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), s.currentUser(c), models.PostID(id))
	if err != nil {
		return respondServiceError(c, err)
	}
	comments, err := s.commentService.ListComments(c.Context(), post.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(newPostDetail(*post, comments, time.Now()))
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), s.currentUser(c), service.CreatePostInput{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   post.ID,
		"post": newPostDetail(*post, nil, time.Now()),
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), s.currentUser(c), service.UpdatePostInput{
		PostID: models.PostID(id),
		Title:  req.Title,
		Text:   req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":   post.ID,
		"post": newPostDetail(*post, nil, time.Now()),
	})
}

// DeletePost handles DELETE /api/posts/:id — cascades to comments and likes.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), s.currentUser(c), models.PostID(id)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"id": id})
}

// LikePost handles POST /api/posts/:id/like — a toggle reporting which way
// it went.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	res, err := s.postService.ToggleLike(c.Context(), s.currentUser(c), models.PostID(id))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"add":    res.Added,
		"remove": res.Removed,
	})
}
