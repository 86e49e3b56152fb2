package catalog

// Item is the full read projection of one DT_Item row. Field names mirror
// the upstream column names so the JSON surface matches what the pipeline
// exports; booleans are coerced from the 0/1 smallints the schema uses.
type Item struct {
	IID        int     `json:"IID"`
	IName      string  `json:"IName"`
	IType      int     `json:"IType"`
	ILevel     int     `json:"ILevel"`
	IWeight    float64 `json:"IWeight"`
	IDesc      string  `json:"IDesc"`
	IUseClass  string  `json:"IUseClass"`
	IMaxStack  int     `json:"IMaxStack"`
	IIsEvent   bool    `json:"IIsEvent"`
	IIsTest    bool    `json:"IIsTest"`
	IIsIndict  bool    `json:"IIsIndict"`
	IIsCharge  bool    `json:"IIsCharge"`
	IIsPartyDrop bool  `json:"IIsPartyDrop"`
	IQuestNo   int     `json:"IQuestNo"`

	ITermOfValidity   int `json:"ITermOfValidity"`
	ITermOfValidityMi int `json:"ITermOfValidityMi"`
	ITermOfValidityLv int `json:"ITermOfValidityLv"`

	// Combat stats.
	IDHIT       int `json:"IDHIT"`
	IDDD        int `json:"IDDD"`
	IRHIT       int `json:"IRHIT"`
	IRDD        int `json:"IRDD"`
	IMHIT       int `json:"IMHIT"`
	IMDD        int `json:"IMDD"`
	IHPPlus     int `json:"IHPPlus"`
	IMPPlus     int `json:"IMPPlus"`
	ISTR        int `json:"ISTR"`
	IDEX        int `json:"IDEX"`
	IINT        int `json:"IINT"`
	IHPRegen    int `json:"IHPRegen"`
	IMPRegen    int `json:"IMPRegen"`
	IAttackRate int `json:"IAttackRate"`
	IMoveRate   int `json:"IMoveRate"`
	ICritical   int `json:"ICritical"`

	IUseType     int    `json:"IUseType"`
	IUseNum      int    `json:"IUseNum"`
	IRecycle     int    `json:"IRecycle"`
	IStatus      int    `json:"IStatus"`
	IFakeID      int    `json:"IFakeID"`
	IFakeName    string `json:"IFakeName"`
	IUseMsg      string `json:"IUseMsg"`
	IRange       int    `json:"IRange"`
	IDropEffect  int    `json:"IDropEffect"`
	IUseLevel    int    `json:"IUseLevel"`
	IUseEternal  bool   `json:"IUseEternal"`
	IUseDelay    int    `json:"IUseDelay"`
	IUseInAttack bool   `json:"IUseInAttack"`
	IAddWeight   float64 `json:"IAddWeight"`
	ISubType     int    `json:"ISubType"`
	INationOp    int    `json:"INationOp"`
	IPShopItemType int  `json:"IPShopItemType"`
	IQuestNeedCnt  int  `json:"IQuestNeedCnt"`
	IContentsLv    int  `json:"IContentsLv"`
	IIsConfirm     bool `json:"IIsConfirm"`
	IIsSealable    bool `json:"IIsSealable"`

	IAddDDWhenCritical  int  `json:"IAddDDWhenCritical"`
	MSealRemovalNeedCnt int  `json:"mSealRemovalNeedCnt"`
	MIsPracticalPeriod  bool `json:"mIsPracticalPeriod"`
	MIsReceiveTown      bool `json:"mIsReceiveTown"`
	IIsReinforceDestroy bool `json:"IIsReinforceDestroy"`
	IAddPotionRestore   int  `json:"IAddPotionRestore"`

	// Transform bonuses.
	IAddMaxHpWhenTransform      int `json:"IAddMaxHpWhenTransform"`
	IAddMaxMpWhenTransform      int `json:"IAddMaxMpWhenTransform"`
	IAddAttackRateWhenTransform int `json:"IAddAttackRateWhenTransform"`
	IAddMoveRateWhenTransform   int `json:"IAddMoveRateWhenTransform"`

	ISupportType        int  `json:"ISupportType"`
	MIsUseableUTGWSvr   bool `json:"mIsUseableUTGWSvr"`
	IAddShortAttackRange int `json:"IAddShortAttackRange"`
	IAddLongAttackRange  int `json:"IAddLongAttackRange"`
	IWeaponPoisonType    int `json:"IWeaponPoisonType"`

	// Defense values (and their "half" variants).
	IDPV  int `json:"IDPV"`
	IMPV  int `json:"IMPV"`
	IRPV  int `json:"IRPV"`
	IDDV  int `json:"IDDV"`
	IMDV  int `json:"IMDV"`
	IRDV  int `json:"IRDV"`
	IHDPV int `json:"IHDPV"`
	IHMPV int `json:"IHMPV"`
	IHRPV int `json:"IHRPV"`
	IHDDV int `json:"IHDDV"`
	IHMDV int `json:"IHMDV"`
	IHRDV int `json:"IHRDV"`

	ISubDDWhenCritical   int  `json:"ISubDDWhenCritical"`
	IGetItemFeedback     int  `json:"IGetItemFeedback"`
	IEnemySubCriticalHit int  `json:"IEnemySubCriticalHit"`
	IMaxBeadHoleCount    int  `json:"IMaxBeadHoleCount"`
	ISubTypeOption       int  `json:"ISubTypeOption"`
	MIsDeleteArenaSvr    bool `json:"mIsDeleteArenaSvr"`
}

// SpriteRef locates one sprite cell inside a sheet: file stem plus X/Y
// offsets. Resource kind 2 is the inventory icon, kind 0 the world model.
type SpriteRef struct {
	OwnerID  int    `json:"ownerId"`
	FileName string `json:"fileName"`
	PosX     int    `json:"posX"`
	PosY     int    `json:"posY"`
}

// Stat reads a combat-stat attribute by its filter key, defaulting to
// zero; the filter engine compares against these.
func (it *Item) Stat(key string) float64 {
	switch key {
	case "IDHIT":
		return float64(it.IDHIT)
	case "IDDD":
		return float64(it.IDDD)
	case "IRHIT":
		return float64(it.IRHIT)
	case "IRDD":
		return float64(it.IRDD)
	case "IMHIT":
		return float64(it.IMHIT)
	case "IMDD":
		return float64(it.IMDD)
	case "IHPPlus":
		return float64(it.IHPPlus)
	case "IMPPlus":
		return float64(it.IMPPlus)
	case "ISTR":
		return float64(it.ISTR)
	case "IDEX":
		return float64(it.IDEX)
	case "IINT":
		return float64(it.IINT)
	case "IHPRegen":
		return float64(it.IHPRegen)
	case "IMPRegen":
		return float64(it.IMPRegen)
	case "IAttackRate":
		return float64(it.IAttackRate)
	case "IMoveRate":
		return float64(it.IMoveRate)
	case "ICritical":
		return float64(it.ICritical)
	}
	return 0
}

// Flag reads a boolean attribute by its filter key.
func (it *Item) Flag(key string) bool {
	switch key {
	case "IIsEvent":
		return it.IIsEvent
	case "IIsTest":
		return it.IIsTest
	case "IIsIndict":
		return it.IIsIndict
	case "IIsCharge":
		return it.IIsCharge
	case "IIsPartyDrop":
		return it.IIsPartyDrop
	}
	return false
}
