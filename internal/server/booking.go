package server

import (
	"net/http"
	"time"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type flowView struct {
	State        bookingflow.State              `json:"state"`
	Preferences  catalogdomain.Preferences      `json:"preferences"`
	RoomID       string                         `json:"room_id,omitempty"`
	PlanID       string                         `json:"plan_id,omitempty"`
	QuotedAmount int64                          `json:"quoted_amount,omitempty"`
	OrderID      string                         `json:"order_id,omitempty"`
	LastFailure  string                         `json:"last_failure,omitempty"`
	Resident     *bookingdomain.ResidentDetails `json:"resident,omitempty"`
}

func newFlowView(f *bookingflow.Flow) flowView {
	view := flowView{
		State:        f.State,
		Preferences:  f.Preferences,
		QuotedAmount: f.QuotedAmount,
		OrderID:      f.GatewayOrderID,
		LastFailure:  f.LastFailure,
		Resident:     f.Resident,
	}
	if f.RoomID != 0 {
		view.RoomID = f.RoomID.String()
	}
	if f.PlanID != 0 {
		view.PlanID = f.PlanID.String()
	}
	return view
}

func (s *Server) GetFlow(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	flow, err := s.flows.Get(c.Request.Context(), studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFlowView(flow))
}

func (s *Server) SetPreferences(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var prefs catalogdomain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var view flowView
	err := s.flows.Mutate(c.Request.Context(), studentID, func(f *bookingflow.Flow) error {
		if err := f.SetPreferences(prefs); err != nil {
			return err
		}
		view = newFlowView(f)
		return nil
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type selectRoomRequest struct {
	RoomID string `json:"room_id"`
	PlanID string `json:"plan_id"`
}

func (s *Server) SelectRoom(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req selectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	roomID, err := snowflake.ParseString(req.RoomID)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	planID, err := snowflake.ParseString(req.PlanID)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, room, err := s.catalogSvc.QuoteRoomPlan(c.Request.Context(), s.db, roomID, planID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	roomView := catalogdomain.RoomView{
		Room:        *room,
		Purchasable: true,
		Quotes:      []catalogdomain.PlanQuote{*quote},
	}

	var view flowView
	err = s.flows.Mutate(c.Request.Context(), studentID, func(f *bookingflow.Flow) error {
		if err := f.SelectRoom(roomView, planID); err != nil {
			return err
		}
		view = newFlowView(f)
		return nil
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type profileRequest struct {
	FullName    string `json:"full_name"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Mobile      string `json:"mobile"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	CheckInDate string `json:"check_in_date"`
}

func (s *Server) SubmitProfile(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dateErrs := bookingflow.FieldErrors{}
	resident := bookingdomain.ResidentDetails{
		FullName:    req.FullName,
		DOB:         parseDateField(req.DOB, "dob", dateErrs),
		Gender:      req.Gender,
		Mobile:      req.Mobile,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		CheckInDate: parseDateField(req.CheckInDate, "check_in_date", dateErrs),
	}
	if len(dateErrs) > 0 {
		AbortWithError(c, dateErrs)
		return
	}

	var view flowView
	err := s.flows.Mutate(c.Request.Context(), studentID, func(f *bookingflow.Flow) error {
		if err := f.SubmitProfile(resident, s.clock.Now()); err != nil {
			return err
		}
		view = newFlowView(f)
		return nil
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// parseDateField accepts YYYY-MM-DD or RFC 3339. An empty value stays a
// zero time so the flow's required-field check reports it; a malformed
// value is recorded against the field.
func parseDateField(value, field string, errs bookingflow.FieldErrors) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	errs[field] = "must be a date in YYYY-MM-DD form"
	return time.Time{}
}

func (s *Server) MyBooking(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	booking, err := s.bookingSvc.MyBooking(c.Request.Context(), studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if booking == nil {
		AbortWithError(c, ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// UploadProfileImage stores the image and attaches its ref to the active
// booking. This is a side channel: a stored image with a failed attach is
// logged and reported, never rolled into booking state.
func (s *Server) UploadProfileImage(c *gin.Context) {
	studentID, ok := studentFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	booking, err := s.bookingSvc.MyBooking(c.Request.Context(), studentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if booking == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	ref, err := s.mediaStore.Save(file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.bookingSvc.AttachImageRef(c.Request.Context(), booking.ID, ref); err != nil {
		s.log.Warn("failed to attach image ref",
			zap.Int64("booking_id", int64(booking.ID)),
			zap.String("ref", ref),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"image_ref": ref})
}
