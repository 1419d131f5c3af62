package clinic

import "context"

// DoctorService owns doctor records and their availability state. The queue
// service mutates availability through it as a side effect of queue
// transitions.
type DoctorService struct {
	store Store
}

func NewDoctorService(store Store) *DoctorService {
	return &DoctorService{store: store}
}

func (s *DoctorService) Create(ctx context.Context, d Doctor) (*Doctor, error) {
	if d.Status == "" {
		d.Status = DoctorAvailable
	}
	return s.store.CreateDoctor(ctx, d)
}

func (s *DoctorService) FindAll(ctx context.Context, f DoctorFilter) ([]Doctor, error) {
	return s.store.ListDoctors(ctx, f)
}

func (s *DoctorService) FindOne(ctx context.Context, id int64) (*Doctor, error) {
	return s.store.GetDoctorByID(ctx, id)
}

func (s *DoctorService) Update(ctx context.Context, id int64, upd DoctorUpdate) (*Doctor, error) {
	return s.store.UpdateDoctor(ctx, id, upd)
}

// Remove deletes the doctor only. Appointments and queue entries that still
// reference the id keep their dangling reference.
func (s *DoctorService) Remove(ctx context.Context, id int64) (bool, error) {
	return s.store.DeleteDoctor(ctx, id)
}
