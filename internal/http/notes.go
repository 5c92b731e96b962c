package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"notes-server/internal/domain"
	"notes-server/internal/service"
)

func (h *Handler) listNotes(c *gin.Context) {
	user, _ := currentUser(c)
	notes, err := h.notes.List(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, "notes.html", gin.H{"Notes": notes})
}

func (h *Handler) createForm(c *gin.Context) {
	h.render(c, "create.html", nil)
}

func (h *Handler) createNote(c *gin.Context) {
	user, _ := currentUser(c)
	_, err := h.notes.Create(c.Request.Context(), user.ID, c.PostForm("title"), c.PostForm("content"), c.PostForm("tags"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.setFlash(c, flashSuccess, "New note has been created successfully.")
	redirect(c, "/")
}

func (h *Handler) viewNote(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}
	h.render(c, "view_note.html", gin.H{"Note": note})
}

func (h *Handler) editForm(c *gin.Context) {
	note, ok := h.ownedNote(c)
	if !ok {
		return
	}
	h.render(c, "edit_note.html", gin.H{"Note": note})
}

func (h *Handler) updateNote(c *gin.Context) {
	user, _ := currentUser(c)
	id, ok := noteID(c)
	if !ok {
		redirect(c, "/")
		return
	}

	title := c.PostForm("title")
	_, err := h.notes.Update(c.Request.Context(), user.ID, id, title, c.PostForm("content"), c.PostForm("tags"))
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			redirect(c, "/")
			return
		}
		h.fail(c, err)
		return
	}
	h.setFlash(c, flashSuccess, fmt.Sprintf("%s has been successfully updated.", title))
	redirect(c, "/")
}

func (h *Handler) deleteNote(c *gin.Context) {
	user, _ := currentUser(c)
	if id, ok := noteID(c); ok {
		if err := h.notes.Delete(c.Request.Context(), user.ID, id); err != nil {
			h.fail(c, err)
			return
		}
	}
	h.setFlash(c, flashSuccess, "Note has been successfully deleted.")
	redirect(c, "/")
}

func (h *Handler) search(c *gin.Context) {
	user, _ := currentUser(c)
	query := c.PostForm("search")
	notes, err := h.notes.SearchByTag(c.Request.Context(), user.ID, query)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, "search_results.html", gin.H{"Notes": notes, "Search": query})
}

// ownedNote loads the note named in the path for the current user. Missing,
// foreign and malformed ids all redirect to the index without a message.
func (h *Handler) ownedNote(c *gin.Context) (*domain.Note, bool) {
	user, _ := currentUser(c)
	id, ok := noteID(c)
	if !ok {
		redirect(c, "/")
		return nil, false
	}

	note, err := h.notes.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			redirect(c, "/")
			return nil, false
		}
		h.fail(c, err)
		return nil, false
	}
	return note, true
}

func noteID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
