package mutation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"docurio.ai/docurio-client/app/domain/resource"
)

func TestSubjectIDFromPayload(t *testing.T) {
	assert.Equal(t, "j_1", SubjectID(KindJobCancel, CancelJobPayload{JobID: "j_1"}, nil))
	assert.Equal(t, "j_2", SubjectID(KindJobDelete, &DeleteJobPayload{JobID: "j_2"}, nil))
	assert.Equal(t, "u_3", SubjectID(KindUserUpdate, UpdateUserPayload{UserID: "u_3"}, nil))
	assert.Equal(t, "t_4", SubjectID(KindTemplateUpdate, &UpdateTemplatePayload{TemplateID: "t_4"}, nil))
}

func TestSubjectIDFromCreateResult(t *testing.T) {
	result := json.RawMessage(`{"id":"j_new","status":"pending"}`)
	assert.Equal(t, "j_new", SubjectID(KindJobCreate, CreateJobPayload{}, result))
	assert.Empty(t, SubjectID(KindJobCreate, CreateJobPayload{}, json.RawMessage(`not json`)))
}

func TestSeedKey(t *testing.T) {
	key, ok := SeedKey(KindJobCreate, "j_1")
	assert.True(t, ok)
	assert.Equal(t, resource.JobKey("j_1"), key)

	key, ok = SeedKey(KindJobCancel, "j_1")
	assert.True(t, ok)
	assert.Equal(t, resource.JobKey("j_1"), key)

	key, ok = SeedKey(KindUserUpdate, "u_1")
	assert.True(t, ok)
	assert.Equal(t, resource.AdminUserKey("u_1"), key)

	_, ok = SeedKey(KindJobDelete, "j_1")
	assert.False(t, ok, "deletes return an ack, nothing to seed")

	_, ok = SeedKey(KindJobCreate, "")
	assert.False(t, ok)
}
