package model

// UserSnapshot is the copy of a user's display fields stored on purchases,
// reviews and reactions. It reflects the user at write time only.
type UserSnapshot struct {
	UserID     string
	Username   string
	ProfilePic string
}

func SnapshotOf(u *User) UserSnapshot {
	return UserSnapshot{
		UserID:     u.ID,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
	}
}

func (s UserSnapshot) ApplyToPurchase(p *Purchase) {
	p.UserID = s.UserID
	p.Username = s.Username
	p.ProfilePic = s.ProfilePic
}

func (s UserSnapshot) ApplyToReview(r *Review) {
	r.UserID = s.UserID
	r.Username = s.Username
	r.ProfilePic = s.ProfilePic
}

func (s UserSnapshot) ApplyToReaction(r *Reaction) {
	r.UserID = s.UserID
	r.Username = s.Username
	r.ProfilePic = s.ProfilePic
}
