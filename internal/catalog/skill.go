package catalog

// SkillListEntry is one row of the skill index: the skill joined to the pack
// that carries its display name and sprite.
type SkillListEntry struct {
	SID        int    `json:"SID"`
	SName      string `json:"SName"`
	SPID       int    `json:"mSPID"`
	PackName   string `json:"mName"`
	PackDesc   string `json:"mDesc"`
	SpriteFile string `json:"mSpriteFile"`
	SpriteX    *int   `json:"mSpriteX"`
	SpriteY    *int   `json:"mSpriteY"`
	IconPath   string `json:"icon_path"`
}

// ModuleParam is one named module parameter; nameless or valueless params
// are dropped from the detail payload.
type ModuleParam struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ModuleData describes the effect module attached to an abnormal.
type ModuleData struct {
	ModuleID int           `json:"module_id"`
	Type     int           `json:"type"`
	TypeName string        `json:"type_name"`
	TypeDesc string        `json:"type_desc"`
	Level    int           `json:"level"`
	Params   []ModuleParam `json:"params,omitempty"`
}

// AbnormalData is the abnormal block embedded in skill and abnormal details.
type AbnormalData struct {
	AbnormalID int    `json:"AbnormalID"`
	ADesc      string `json:"ADesc"`
	AType      int    `json:"AType"`
	ALevel     int    `json:"ALevel"`
	AEffect    int    `json:"AEffect"`
	AName      string `json:"AName,omitempty"`
}

// SkillRow is one joined row of a skill detail; a skill granted by several
// items or carrying several abnormals yields several rows.
type SkillRow struct {
	SID          int    `json:"sid"`
	Name         string `json:"name"`
	Desc         string `json:"desc"`
	HitPlus      int    `json:"hit_plus"`
	MPPerUse     int    `json:"mp_per_use"`
	SkillType    int    `json:"skill_type"`
	TypeDesc     string `json:"type_desc"`
	HPPerUse     int    `json:"hp_per_use"`
	ChaoUse      int    `json:"chao_use"`
	ApplyRadius  int    `json:"apply_radius"`
	ApplyRace    int    `json:"apply_race"`
	CastingDelay int    `json:"casting_delay"`
	ConsumeItem  int    `json:"consume_item"`
	ActiveType   int    `json:"active_type"`
	Animation    int    `json:"animation"`
	CastingSpeed int    `json:"casting_speed"`
	SkillEffect  int    `json:"skill_effect"`
	CoolTime     int    `json:"cool_time"`
	ConsumeItem2    int `json:"consume_item2"`
	ConsumeItemCnt2 int `json:"consume_item_cnt2"`

	ItemID       int        `json:"item_id"`
	ItemPic      *SpriteRef `json:"item_pic,omitempty"`
	ItemName     string     `json:"item_name"`
	ItemUseLevel int        `json:"item_use_level"`
	ItemUseClass string     `json:"item_use_class"`

	SkillPackID   int    `json:"skill_pack_id"`
	SkillPackDesc string `json:"skill_pack_desc"`

	Abnormal        *AbnormalData     `json:"abnormal_data,omitempty"`
	Module          *ModuleData       `json:"module_data,omitempty"`
	AbnormalType    *AbnormalTypeInfo `json:"abnormal_type_data,omitempty"`
	AbnormalTypePic string            `json:"abnormal_type_pic,omitempty"`
}

// SkillDetail groups the joined rows of one skill with its attribute and
// slain bonuses.
type SkillDetail struct {
	Rows      []SkillRow       `json:"rows"`
	Attribute *AttributeEffect `json:"attribute,omitempty"`
	Slain     *Slain           `json:"slain,omitempty"`
}

// AbnormalListEntry is one row of the abnormal index.
type AbnormalListEntry struct {
	AID      int    `json:"AID"`
	AName    string `json:"AName"`
	ADesc    string `json:"ADesc"`
	AType    int    `json:"AType"`
	ALevel   int    `json:"ALevel"`
	AEffect  int    `json:"AEffect"`
	FileName string `json:"AFileName"`
	IconX    *int   `json:"AIconX"`
	IconY    *int   `json:"AIconY"`
	IconPath string `json:"icon_path"`
}

// AbnormalSkillData is the skill block embedded in an abnormal detail.
type AbnormalSkillData struct {
	SID   int    `json:"SID"`
	SName string `json:"SName"`
	SDesc string `json:"SDesc"`
}

// AbnormalDetail is the aggregate returned for one abnormal effect.
type AbnormalDetail struct {
	Abnormal        AbnormalData       `json:"abnormal_data"`
	Module          *ModuleData        `json:"module_data,omitempty"`
	Skill           *AbnormalSkillData `json:"skill_data,omitempty"`
	AbnormalType    *AbnormalTypeInfo  `json:"abnormal_type_data,omitempty"`
	AbnormalTypePic string             `json:"abnormal_type_pic,omitempty"`
	RelatedSkills   []RelatedSkill     `json:"related_skills,omitempty"`
	RelatedItems    []RelatedItem      `json:"related_items,omitempty"`
}

// QuestItem is one reward or requirement line of a quest.
type QuestItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Pic   string `json:"pic"`
}

// QuestNPC is a quest-giver or quest-completion NPC reference.
type QuestNPC struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Pic  string `json:"pic"`
}

// Quest is one grouped quest record: rewards and requirements accumulate
// across the joined rows sharing a quest number.
type Quest struct {
	QuestNo     int    `json:"questNo"`
	QuestName   string `json:"questName"`
	Level       string `json:"level"`
	Class       string `json:"class"`
	Difficulty  int    `json:"difficulty"`
	Description string `json:"description"`
	Place       string `json:"place"`
	Rewards     struct {
		Exp      int64       `json:"exp"`
		ItemList []QuestItem `json:"itemList"`
	} `json:"rewards"`
	Requirements struct {
		ItemList []QuestItem `json:"itemList"`
	} `json:"requirements"`
	NPCs struct {
		Completion *QuestNPC `json:"completion"`
		Find       *QuestNPC `json:"find"`
	} `json:"npcs"`
}
