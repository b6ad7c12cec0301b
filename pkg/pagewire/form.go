package pagewire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmercer/pagewire/pkg/pagewire/dom"
	"github.com/dmercer/pagewire/pkg/pagewire/observability"
	"github.com/dmercer/pagewire/pkg/pagewire/sched"
	"github.com/dmercer/pagewire/pkg/pagewire/storage"
)

// Draft is a persisted contact-form draft. TS is the save time in
// milliseconds since the epoch, taken from the session scheduler clock.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	TS      int64  `json:"ts"`
}

// minMessageLen is the shortest message the form accepts.
const minMessageLen = 10

// formWidget is the contact form: draft persistence on input, debounced,
// plus client-side validation on submit.
type formWidget struct {
	s *Session

	form    *dom.Element
	name    *dom.Element
	email   *dom.Element
	message *dom.Element
	status  *dom.Element

	key      string
	debounce *sched.Debouncer
}

// installForm binds the contact form. A missing form skips the widget;
// a form missing one of its three fields is a broken page and an error.
func (s *Session) installForm(ctx context.Context) (bool, error) {
	form, err := s.doc.Query(s.st.ContactFormSelector)
	if err != nil {
		return false, err
	}
	if form == nil {
		s.logSelectorMiss("form", s.st.ContactFormSelector)
		return false, nil
	}

	w := &formWidget{
		s:    s,
		form: form,
		key:  s.st.ContactDraftKey,
	}
	if w.name, err = fieldByName(form, "name"); err != nil {
		return false, err
	}
	if w.email, err = fieldByName(form, "email"); err != nil {
		return false, err
	}
	if w.message, err = fieldByName(form, "message"); err != nil {
		return false, err
	}
	w.status = findStatusRegion(form)

	w.loadDraft()

	w.debounce = sched.NewDebouncer(s.scheduler, s.st.FormDebounce)
	s.stoppers = append(s.stoppers, w.debounce.Cancel)

	for _, field := range []*dom.Element{w.name, w.email, w.message} {
		s.addListener("form", field, "input", func(ev *dom.Event) {
			w.debounce.Trigger(w.saveDraft)
		}, dom.ListenerOptions{})
	}
	s.addListener("form", form, "submit", w.handleSubmit, dom.ListenerOptions{})

	return true, nil
}

// fieldByName locates an input or textarea by its name attribute.
func fieldByName(form *dom.Element, name string) (*dom.Element, error) {
	for _, sel := range []string{"input", "textarea"} {
		fields, err := form.QueryAll(sel)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			if v, _ := f.Attribute("name"); v == name {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("contact form has no %q field", name)
}

// findStatusRegion returns the form's aria-live region, nil when the
// markup has none. Validation and success messages land there.
func findStatusRegion(form *dom.Element) *dom.Element {
	all, err := form.QueryAll("*")
	if err != nil {
		return nil
	}
	for _, el := range all {
		if el.HasAttribute("aria-live") {
			return el
		}
	}
	return nil
}

// loadDraft restores a persisted draft into the fields. Storage and
// decode failures are logged and the form starts empty; a draft must
// never block the page.
func (w *formWidget) loadDraft() {
	raw, err := w.s.store.Get(w.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		observability.LogDraftError(w.s.logger, w.key, "load", err)
		return
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		observability.LogDraftError(w.s.logger, w.key, "decode", err)
		return
	}

	w.name.SetValue(d.Name)
	w.email.SetValue(d.Email)
	w.message.SetValue(d.Message)
	w.s.lastDraft = &d
}

// saveDraft snapshots the fields and persists them. Runs on the
// scheduler after the debounce window closes.
func (w *formWidget) saveDraft() {
	d := Draft{
		Name:    w.name.Value(),
		Email:   w.email.Value(),
		Message: w.message.Value(),
		TS:      w.s.scheduler.Now().UnixMilli(),
	}
	w.s.lastDraft = &d

	raw, err := json.Marshal(d)
	if err != nil {
		observability.LogDraftError(w.s.logger, w.key, "encode", err)
		return
	}

	err = w.s.store.Set(w.key, raw)
	w.s.metrics.RecordDraftSave(w.s.ctx, int64(len(raw)), err)
	if err != nil {
		observability.LogDraftError(w.s.logger, w.key, "save", err)
		return
	}
	observability.LogDraftSaved(w.s.logger, w.key, len(raw))
}

// handleSubmit validates the form. Valid input clears the fields and the
// persisted draft; invalid input marks the offending fields and reports
// through the status region. The platform submit is always suppressed.
func (w *formWidget) handleSubmit(ev *dom.Event) {
	ev.PreventDefault()

	name := strings.TrimSpace(w.name.Value())
	email := strings.TrimSpace(w.email.Value())
	message := strings.TrimSpace(w.message.Value())

	msgs := w.s.st.Messages
	var problems []string
	problems = w.mark(w.name, name != "", msgs.NameRequired, problems)
	problems = w.mark(w.email, validEmail(email), msgs.EmailInvalid, problems)
	problems = w.mark(w.message, len(message) >= minMessageLen, msgs.MessageTooShort, problems)

	if len(problems) > 0 {
		w.setStatus(strings.Join(problems, " "))
		return
	}

	w.name.SetValue("")
	w.email.SetValue("")
	w.message.SetValue("")

	// Cancel first: a pending debounced save would resurrect the draft
	// right after we delete it.
	w.debounce.Cancel()
	if err := w.s.store.Delete(w.key); err != nil {
		observability.LogDraftError(w.s.logger, w.key, "delete", err)
	}
	w.s.lastDraft = nil
	w.setStatus(msgs.FormSuccess)
}

// mark sets or clears aria-invalid on a field and collects the message
// when the check failed.
func (w *formWidget) mark(field *dom.Element, ok bool, msg string, problems []string) []string {
	if ok {
		field.RemoveAttribute("aria-invalid")
		return problems
	}
	field.SetAttribute("aria-invalid", "true")
	return append(problems, msg)
}

func (w *formWidget) setStatus(text string) {
	if w.status != nil {
		w.status.SetText(text)
	}
}

// validEmail applies the same loose shape check the form used before:
// one @, a non-empty local part, a dot somewhere in the domain, and no
// whitespace. Real validation belongs to the mail server.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
