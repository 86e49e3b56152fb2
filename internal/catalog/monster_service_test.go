package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMonsterStore struct {
	monster *Monster
	modelNo *int
	drops   []MonsterDrop
}

func (f *fakeMonsterStore) MonstersByClass(_ context.Context, classes []int, search string) ([]Monster, error) {
	if f.monster == nil {
		return nil, nil
	}
	return []Monster{*f.monster}, nil
}

func (f *fakeMonsterStore) MonsterByID(_ context.Context, id int) (*Monster, error) {
	if f.monster != nil && f.monster.MID == id {
		return f.monster, nil
	}
	return nil, nil
}

func (f *fakeMonsterStore) MonsterName(_ context.Context, id int) (string, error) {
	return f.monster.MName, nil
}

func (f *fakeMonsterStore) MonsterModelNo(_ context.Context, id int) (*int, error) {
	return f.modelNo, nil
}

func (f *fakeMonsterStore) MonsterDrops(_ context.Context, id int) ([]MonsterDrop, error) {
	return f.drops, nil
}

func (f *fakeMonsterStore) RespawnTick(_ context.Context, id int, isEvent bool) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeMonsterStore) MonsterAbnormalResists(_ context.Context, id int) ([]AbnormalResist, error) {
	return nil, nil
}

func (f *fakeMonsterStore) MonsterAttributeAdd(_ context.Context, id int) (*AttributeEffect, error) {
	return nil, nil
}

func (f *fakeMonsterStore) MonsterAttributeResist(_ context.Context, id int) (*AttributeEffect, error) {
	return nil, nil
}

func (f *fakeMonsterStore) MonsterProtect(_ context.Context, id int) (*Protect, error) {
	return nil, nil
}

func (f *fakeMonsterStore) MonsterSlain(_ context.Context, id int) (*Slain, error) {
	return nil, nil
}

type fakeInventory struct{}

func (fakeInventory) ItemsOfMerchant(_ context.Context, merchantID int) ([]MerchantItem, error) {
	return nil, nil
}

type fakeIcons struct{}

func (fakeIcons) ItemIcon(fileName string, x, y int) string       { return "icon/" + fileName }
func (fakeIcons) ItemIconDefault() string                         { return "icon/default" }
func (fakeIcons) SkillIcon(spriteFile string, x, y *int) string   { return "skill/" + spriteFile }
func (fakeIcons) MonsterPortrait(mid int) string                  { return "portrait" }
func (fakeIcons) MonsterModel(fileNo int) string                  { return "models/m00042" }
func (fakeIcons) ClassIcon(class int) string                      { return "class" }

type fakeAttrNames struct{}

func (fakeAttrNames) WeaponAttribute(_ context.Context, atype int) string { return "Огонь" }
func (fakeAttrNames) ArmorAttribute(_ context.Context, atype int) string  { return "Вода" }

type fakeClassNames struct {
	gotCtx context.Context
}

func (f *fakeClassNames) MonsterClass(ctx context.Context, class int) string {
	f.gotCtx = ctx
	if class == 29 {
		return "Босс"
	}
	return ""
}

func (f *fakeClassNames) MonsterRace(_ context.Context, race int) string {
	if race == 9 {
		return "Демоны"
	}
	return ""
}

func (f *fakeClassNames) MonsterLocations(_ context.Context, mid int) []MonsterLocation {
	if mid != 4242 {
		return nil
	}
	level := "70+"
	return []MonsterLocation{
		{Location: "Долина драконов", Level: &level},
		{Location: "Глубокие пещеры"},
	}
}

func TestMonsterDetailReferenceSections(t *testing.T) {
	modelNo := 42
	store := &fakeMonsterStore{
		monster: &Monster{MID: 4242, MName: "Барлог", MClass: 29, MRaceType: 9, MLevel: 70},
		modelNo: &modelNo,
	}
	classes := &fakeClassNames{}
	svc := NewMonsterService(store, fakeInventory{}, fakeIcons{}, fakeAttrNames{}, classes, zap.NewNop())

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "req")
	d, err := svc.Detail(ctx, 4242)
	require.NoError(t, err)

	assert.Equal(t, "Босс", d.ClassName)
	assert.Equal(t, "Демоны", d.RaceDesc)

	require.Len(t, d.Locations, 2)
	assert.Equal(t, "Долина драконов", d.Locations[0].Location)
	require.NotNil(t, d.Locations[0].Level)
	assert.Equal(t, "70+", *d.Locations[0].Level)
	assert.Nil(t, d.Locations[1].Level)

	assert.Equal(t, "00042", d.ModelNo)
	assert.Equal(t, "models/m00042", d.Model)

	// Sheet lookups run under the request context, not a background one.
	assert.Equal(t, "req", classes.gotCtx.Value(ctxKey{}))
}

func TestMonsterDetailWithoutReferenceData(t *testing.T) {
	store := &fakeMonsterStore{
		monster: &Monster{MID: 7, MName: "Волк", MClass: 1, MRaceType: 2},
	}
	svc := NewMonsterService(store, fakeInventory{}, fakeIcons{}, fakeAttrNames{}, &fakeClassNames{}, zap.NewNop())

	d, err := svc.Detail(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, d.ClassName)
	assert.Empty(t, d.RaceDesc)
	assert.Empty(t, d.Locations)
	assert.Empty(t, d.ModelNo)
	assert.Empty(t, d.Model)
}

func TestMonsterDetailNotFound(t *testing.T) {
	svc := NewMonsterService(&fakeMonsterStore{}, fakeInventory{}, fakeIcons{}, fakeAttrNames{}, &fakeClassNames{}, zap.NewNop())

	_, err := svc.Detail(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
