package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careaxis/hospital-admin-api/internal/apperr"
	"github.com/careaxis/hospital-admin-api/internal/models"
	"github.com/careaxis/hospital-admin-api/internal/repository"
)

// In-memory store fakes. They run the same model hooks gorm would
// (BeforeCreate, BeforeSave) and hand out copies so callers never alias the
// stored state, which is what makes the read-modify-write tests meaningful.

type fakeDB struct {
	transactions int
}

func (f *fakeDB) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	f.transactions++
	return fc(nil)
}

type fakeWardStore struct {
	wards       map[uuid.UUID]*models.Ward
	order       []uuid.UUID
	lockedReads int
}

func newFakeWardStore() *fakeWardStore {
	return &fakeWardStore{wards: make(map[uuid.UUID]*models.Ward)}
}

func cloneWard(w *models.Ward) *models.Ward {
	c := *w
	c.Patients = append([]models.BedOccupancy(nil), w.Patients...)
	return &c
}

func (f *fakeWardStore) WithTx(tx *gorm.DB) repository.WardStore { return f }

func (f *fakeWardStore) List(ctx context.Context) ([]models.Ward, error) {
	out := make([]models.Ward, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *cloneWard(f.wards[id]))
	}
	return out, nil
}

func (f *fakeWardStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	w, ok := f.wards[id]
	if !ok {
		return nil, apperr.NotFound("ward not found")
	}
	return cloneWard(w), nil
}

func (f *fakeWardStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Ward, error) {
	f.lockedReads++
	return f.GetByID(ctx, id)
}

func (f *fakeWardStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ward, error) {
	var out []models.Ward
	for _, id := range ids {
		if w, ok := f.wards[id]; ok {
			out = append(out, *cloneWard(w))
		}
	}
	return out, nil
}

func (f *fakeWardStore) Create(ctx context.Context, ward *models.Ward) error {
	if err := ward.BeforeCreate(nil); err != nil {
		return err
	}
	if err := ward.BeforeSave(nil); err != nil {
		return err
	}
	f.wards[ward.ID] = cloneWard(ward)
	f.order = append(f.order, ward.ID)
	return nil
}

func (f *fakeWardStore) Save(ctx context.Context, ward *models.Ward) error {
	if err := ward.BeforeSave(nil); err != nil {
		return err
	}
	if _, ok := f.wards[ward.ID]; !ok {
		f.order = append(f.order, ward.ID)
	}
	f.wards[ward.ID] = cloneWard(ward)
	return nil
}

func (f *fakeWardStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.wards, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakePatientStore struct {
	patients    map[uuid.UUID]*models.Patient
	order       []uuid.UUID
	lockedReads int
}

func newFakePatientStore() *fakePatientStore {
	return &fakePatientStore{patients: make(map[uuid.UUID]*models.Patient)}
}

func clonePatient(p *models.Patient) *models.Patient {
	c := *p
	c.WardHistory = append([]models.WardHistoryEntry(nil), p.WardHistory...)
	return &c
}

func (f *fakePatientStore) WithTx(tx *gorm.DB) repository.PatientStore { return f }

func (f *fakePatientStore) List(ctx context.Context) ([]models.Patient, error) {
	out := make([]models.Patient, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *clonePatient(f.patients[id]))
	}
	return out, nil
}

func (f *fakePatientStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperr.NotFound("patient not found")
	}
	return clonePatient(p), nil
}

func (f *fakePatientStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	f.lockedReads++
	return f.GetByID(ctx, id)
}

func (f *fakePatientStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Patient, error) {
	var out []models.Patient
	for _, id := range ids {
		if p, ok := f.patients[id]; ok {
			out = append(out, *clonePatient(p))
		}
	}
	return out, nil
}

func (f *fakePatientStore) Create(ctx context.Context, patient *models.Patient) error {
	if err := patient.BeforeCreate(nil); err != nil {
		return err
	}
	f.patients[patient.ID] = clonePatient(patient)
	f.order = append(f.order, patient.ID)
	return nil
}

func (f *fakePatientStore) Save(ctx context.Context, patient *models.Patient) error {
	if _, ok := f.patients[patient.ID]; !ok {
		f.order = append(f.order, patient.ID)
	}
	f.patients[patient.ID] = clonePatient(patient)
	return nil
}

func (f *fakePatientStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.patients, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakePatientStore) RefreshWardName(ctx context.Context, wardID uuid.UUID, name string) error {
	for _, p := range f.patients {
		if p.AssignedWardID != nil && *p.AssignedWardID == wardID {
			n := name
			p.AssignedWardName = &n
		}
	}
	return nil
}

func (f *fakePatientStore) RefreshTeamName(ctx context.Context, teamID uuid.UUID, name string) error {
	for _, p := range f.patients {
		if p.AssignedTeamID != nil && *p.AssignedTeamID == teamID {
			n := name
			p.AssignedTeamName = &n
		}
	}
	return nil
}

type fakeDoctorStore struct {
	doctors     map[uuid.UUID]*models.Doctor
	order       []uuid.UUID
	lockedReads int
}

func newFakeDoctorStore() *fakeDoctorStore {
	return &fakeDoctorStore{doctors: make(map[uuid.UUID]*models.Doctor)}
}

func (f *fakeDoctorStore) WithTx(tx *gorm.DB) repository.DoctorStore { return f }

func (f *fakeDoctorStore) List(ctx context.Context) ([]models.Doctor, error) {
	out := make([]models.Doctor, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.doctors[id])
	}
	return out, nil
}

func (f *fakeDoctorStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperr.NotFound("doctor not found")
	}
	c := *d
	return &c, nil
}

func (f *fakeDoctorStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	f.lockedReads++
	return f.GetByID(ctx, id)
}

func (f *fakeDoctorStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, id := range ids {
		if d, ok := f.doctors[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := doctor.BeforeCreate(nil); err != nil {
		return err
	}
	c := *doctor
	f.doctors[doctor.ID] = &c
	f.order = append(f.order, doctor.ID)
	return nil
}

func (f *fakeDoctorStore) Save(ctx context.Context, doctor *models.Doctor) error {
	c := *doctor
	if _, ok := f.doctors[doctor.ID]; !ok {
		f.order = append(f.order, doctor.ID)
	}
	f.doctors[doctor.ID] = &c
	return nil
}

func (f *fakeDoctorStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.doctors, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeTeamStore struct {
	teams       map[uuid.UUID]*models.DoctorTeam
	order       []uuid.UUID
	lockedReads int
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[uuid.UUID]*models.DoctorTeam)}
}

func cloneTeam(t *models.DoctorTeam) *models.DoctorTeam {
	c := *t
	c.Doctors = append([]uuid.UUID(nil), t.Doctors...)
	c.Patients = append([]uuid.UUID(nil), t.Patients...)
	return &c
}

func (f *fakeTeamStore) WithTx(tx *gorm.DB) repository.TeamStore { return f }

func (f *fakeTeamStore) List(ctx context.Context) ([]models.DoctorTeam, error) {
	out := make([]models.DoctorTeam, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *cloneTeam(f.teams[id]))
	}
	return out, nil
}

func (f *fakeTeamStore) GetByID(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, apperr.NotFound("doctor team not found")
	}
	return cloneTeam(t), nil
}

func (f *fakeTeamStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DoctorTeam, error) {
	f.lockedReads++
	return f.GetByID(ctx, id)
}

func (f *fakeTeamStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.DoctorTeam, error) {
	var out []models.DoctorTeam
	for _, id := range ids {
		if t, ok := f.teams[id]; ok {
			out = append(out, *cloneTeam(t))
		}
	}
	return out, nil
}

func (f *fakeTeamStore) CodeExists(ctx context.Context, code string) (bool, error) {
	for _, t := range f.teams {
		if t.TeamCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamStore) Create(ctx context.Context, team *models.DoctorTeam) error {
	if err := team.BeforeCreate(nil); err != nil {
		return err
	}
	if err := team.BeforeSave(nil); err != nil {
		return err
	}
	f.teams[team.ID] = cloneTeam(team)
	f.order = append(f.order, team.ID)
	return nil
}

func (f *fakeTeamStore) Save(ctx context.Context, team *models.DoctorTeam) error {
	if err := team.BeforeSave(nil); err != nil {
		return err
	}
	if _, ok := f.teams[team.ID]; !ok {
		f.order = append(f.order, team.ID)
	}
	f.teams[team.ID] = cloneTeam(team)
	return nil
}

func (f *fakeTeamStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.teams, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}
