package vm

import (
	"sort"
	"sync"
	"unsafe"
)

type Field struct {
	offset       int
	name         string
	writable     bool
	enumerable   bool
	configurable bool
	isAccessor   bool
}

type Shape struct {
	parent      *Shape
	fields      []Field
	transitions map[string]*Shape
	mu          sync.RWMutex // Protects transitions map
	version     uint32       // Bumped on any layout/flags change
}

type Object struct {
}

type PlainObject struct {
	Object
	shape      *Shape
	prototype  Value
	properties []Value
	// Accessor storage keyed by property name
	getters map[string]Value
	setters map[string]Value
	// Extensible flag - when false, no new properties can be added
	extensible bool
}

// GetOwn looks up a direct (own) property by name. Returns (value, true) if present.
// For accessor properties the stored slot value (Undefined) is returned;
// callers that need the getter use GetOwnAccessor or the descriptor API.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	for _, f := range o.shape.fields {
		if f.name == name {
			if f.offset < len(o.properties) {
				return o.properties[f.offset], true
			}
			return Undefined, true
		}
	}
	return Undefined, false
}

// GetOwnAccessor returns the accessor pair for an own property if it is an accessor.
// Returns (get, set, enumerable, configurable, exists)
func (o *PlainObject) GetOwnAccessor(name string) (Value, Value, bool, bool, bool) {
	for _, f := range o.shape.fields {
		if f.name == name && f.isAccessor {
			var g, s Value = Undefined, Undefined
			if o.getters != nil {
				if v, ok := o.getters[name]; ok {
					g = v
				}
			}
			if o.setters != nil {
				if v, ok := o.setters[name]; ok {
					s = v
				}
			}
			return g, s, f.enumerable, f.configurable, true
		}
	}
	return Undefined, Undefined, false, false, false
}

// DeleteOwn removes an own property if present and configurable.
// Returns true if the property was deleted (or did not exist).
func (o *PlainObject) DeleteOwn(name string) bool {
	// Find field index
	idx := -1
	var f Field
	for i := range o.shape.fields {
		if o.shape.fields[i].name == name {
			idx = i
			f = o.shape.fields[i]
			break
		}
	}
	if idx == -1 {
		// Non-existent own property: delete returns true per ECMAScript
		return true
	}
	// If not configurable, cannot delete
	if !f.configurable {
		return false
	}
	// Build new fields slice without idx
	newFields := make([]Field, 0, len(o.shape.fields)-1)
	for i, fld := range o.shape.fields {
		if i == idx {
			continue
		}
		// Adjust offsets and append
		nf := fld
		if fld.offset > f.offset {
			nf.offset = fld.offset - 1
		}
		newFields = append(newFields, nf)
	}
	// Build new properties slice without f.offset
	newProps := make([]Value, 0, len(o.properties)-1)
	for i := range o.properties {
		if i == f.offset {
			continue
		}
		newProps = append(newProps, o.properties[i])
	}
	// Create new shape without transitions for simplicity and bump version
	o.shape = &Shape{parent: o.shape.parent, fields: newFields, transitions: make(map[string]*Shape), version: o.shape.version + 1}
	o.properties = newProps
	if f.isAccessor {
		delete(o.getters, name)
		delete(o.setters, name)
	}
	return true
}

// SetOwn sets or defines an own property with plain assignment semantics.
// Creates a new shape on first definition. If the property exists and is
// non-writable, this is a no-op.
func (o *PlainObject) SetOwn(name string, v Value) {
	for _, f := range o.shape.fields {
		if f.name == name {
			// existing property: honor writable flag
			if f.writable {
				o.properties[f.offset] = v
			}
			return
		}
	}
	// new property: regular assignment semantics -> writable: true, enumerable: true, configurable: true
	if !o.extensible {
		return
	}
	cur := o.shape
	cur.mu.RLock()
	next, ok := cur.transitions[name]
	cur.mu.RUnlock()
	if !ok {
		off := len(cur.fields)
		fld := Field{offset: off, name: name, writable: true, enumerable: true, configurable: true}
		newFields := make([]Field, len(cur.fields)+1)
		copy(newFields, cur.fields)
		newFields[len(cur.fields)] = fld
		newTrans := make(map[string]*Shape)
		next = &Shape{parent: cur, fields: newFields, transitions: newTrans, version: cur.version + 1}
		cur.mu.Lock()
		if existing, exists := cur.transitions[name]; exists {
			next = existing
		} else {
			cur.transitions[name] = next
		}
		cur.mu.Unlock()
	}
	o.shape = next
	o.properties = append(o.properties, v)
}

// DefineOwnProperty defines or updates an own property from a descriptor,
// enforcing the ordinary non-configurable rules. Returns false when the
// definition is rejected.
func (o *PlainObject) DefineOwnProperty(name string, pd *PropertyDescriptor) bool {
	for i, f := range o.shape.fields {
		if f.name != name {
			continue
		}
		// Existing property
		if pd.IsGenericDescriptor() && !pd.EnumerableSet() && !pd.ConfigurableSet() {
			// Every facet absent: trivially satisfied
			return true
		}
		if !f.configurable {
			if pd.ConfigurableSet() && pd.Configurable() {
				return false
			}
			if pd.EnumerableSet() && pd.Enumerable() != f.enumerable {
				return false
			}
			if !pd.IsGenericDescriptor() && pd.IsAccessorDescriptor() != f.isAccessor {
				return false
			}
			if f.isAccessor {
				// Cannot swap either half of a non-configurable accessor
				g, s, _, _, _ := o.GetOwnAccessor(name)
				if pd.HasGetter() && !pd.Getter().Is(g) {
					return false
				}
				if pd.HasSetter() && !pd.Setter().Is(s) {
					return false
				}
			} else if !f.writable {
				if pd.WritableSet() && pd.Writable() {
					return false
				}
				if pd.HasValue() && !pd.ValueOrUndefined().Is(o.properties[f.offset]) {
					return false
				}
			}
		}
		newF := f
		switch {
		case pd.IsAccessorDescriptor():
			if !newF.isAccessor {
				newF.isAccessor = true
				newF.writable = false
				o.properties[f.offset] = Undefined
			}
			o.ensureAccessorMaps()
			if pd.HasGetter() {
				o.getters[name] = pd.Getter()
			}
			if pd.HasSetter() {
				o.setters[name] = pd.Setter()
			}
		case pd.IsDataDescriptor():
			if newF.isAccessor {
				newF.isAccessor = false
				newF.writable = false
				delete(o.getters, name)
				delete(o.setters, name)
			}
			if pd.HasValue() {
				o.properties[f.offset] = pd.ValueOrUndefined()
			}
			if pd.WritableSet() {
				newF.writable = pd.Writable()
			}
		}
		if pd.EnumerableSet() {
			newF.enumerable = pd.Enumerable()
		}
		if pd.ConfigurableSet() {
			newF.configurable = pd.Configurable()
		}
		if newF != f {
			// Shapes reached through the transition table are shared across
			// objects; attribute changes must not write through them.
			o.cloneShapeForWrite()
			o.shape.fields[i] = newF
		}
		return true
	}
	// New property via descriptor: defaults false unless specified
	if !o.extensible {
		return false
	}
	cur := o.shape
	off := len(cur.fields)
	fld := Field{
		offset:       off,
		name:         name,
		enumerable:   pd.Enumerable(),
		configurable: pd.Configurable(),
		isAccessor:   pd.IsAccessorDescriptor(),
	}
	var slot Value = Undefined
	if fld.isAccessor {
		o.ensureAccessorMaps()
		if pd.HasGetter() {
			o.getters[name] = pd.Getter()
		}
		if pd.HasSetter() {
			o.setters[name] = pd.Setter()
		}
	} else {
		fld.writable = pd.Writable()
		slot = pd.ValueOrUndefined()
	}
	newFields := make([]Field, len(cur.fields)+1)
	copy(newFields, cur.fields)
	newFields[len(cur.fields)] = fld
	next := &Shape{parent: cur, fields: newFields, transitions: make(map[string]*Shape), version: cur.version + 1}
	o.shape = next
	o.properties = append(o.properties, slot)
	return true
}

// GetOwnPropertyDescriptor returns the descriptor for an own property, or
// the registry's absent sentinel when the property does not exist. Frozen
// all-forbidden properties holding cached literal values return the shared
// cache instance instead of allocating.
func (o *PlainObject) GetOwnPropertyDescriptor(vmctx *VM, name string) *PropertyDescriptor {
	for _, f := range o.shape.fields {
		if f.name != name {
			continue
		}
		if f.isAccessor {
			pd := NewGenericDescriptor(FlagOf(f.enumerable), FlagOf(f.configurable))
			if o.getters != nil {
				if g, ok := o.getters[name]; ok {
					pd.SetGetter(g)
				}
			}
			if o.setters != nil {
				if s, ok := o.setters[name]; ok {
					pd.SetSetter(s)
				}
			}
			return pd
		}
		var v Value = Undefined
		if f.offset < len(o.properties) {
			v = o.properties[f.offset]
		}
		if !f.writable && !f.enumerable && !f.configurable {
			if cached, ok := vmctx.Descriptors().Forbidden(v); ok {
				return cached
			}
		}
		return NewDataDescriptorFlags(v, FlagOf(f.writable), FlagOf(f.enumerable), FlagOf(f.configurable))
	}
	return vmctx.Descriptors().Absent()
}

// Freeze makes every own property non-writable and non-configurable and
// prevents extensions. Other objects sharing the shape are unaffected.
func (o *PlainObject) Freeze() {
	o.cloneShapeForWrite()
	for i := range o.shape.fields {
		if !o.shape.fields[i].isAccessor {
			o.shape.fields[i].writable = false
		}
		o.shape.fields[i].configurable = false
	}
	o.extensible = false
}

// cloneShapeForWrite detaches the object from its shared shape ahead of a
// field flag change, copying the field list into a private shape with no
// transitions.
func (o *PlainObject) cloneShapeForWrite() {
	fields := make([]Field, len(o.shape.fields))
	copy(fields, o.shape.fields)
	o.shape = &Shape{parent: o.shape.parent, fields: fields, transitions: make(map[string]*Shape), version: o.shape.version + 1}
}

func (o *PlainObject) ensureAccessorMaps() {
	if o.getters == nil {
		o.getters = make(map[string]Value)
	}
	if o.setters == nil {
		o.setters = make(map[string]Value)
	}
}

// HasOwn reports whether an own property with the given name exists.
func (o *PlainObject) HasOwn(name string) bool {
	for _, f := range o.shape.fields {
		if f.name == name {
			return true
		}
	}
	return false
}

// OwnKeys returns the list of own enumerable property names in insertion order.
func (o *PlainObject) OwnKeys() []string {
	keys := make([]string, 0, len(o.shape.fields))
	for _, f := range o.shape.fields {
		if f.enumerable {
			keys = append(keys, f.name)
		}
	}
	return keys
}

// OwnPropertyNames returns the list of all own property names (including non-enumerable).
// Per ECMAScript spec, integer indices come first (in ascending numeric order), then string keys
// in insertion order.
func (o *PlainObject) OwnPropertyNames() []string {
	var integerIndices []int
	var stringKeys []string

	for _, f := range o.shape.fields {
		if idx, isInt := tryParseArrayIndex(f.name); isInt {
			integerIndices = append(integerIndices, idx)
		} else {
			stringKeys = append(stringKeys, f.name)
		}
	}

	sortInts(integerIndices)

	result := make([]string, 0, len(integerIndices)+len(stringKeys))
	for _, idx := range integerIndices {
		result = append(result, intToString(idx))
	}
	result = append(result, stringKeys...)

	return result
}

// tryParseArrayIndex checks if a string represents a valid array index.
// Returns (index, true) if valid, (0, false) otherwise.
// Valid array indices are non-negative integers in range [0, 2^32-1) without leading zeros.
func tryParseArrayIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	// Leading zeros not allowed (except "0" itself)
	if len(key) > 1 && key[0] == '0' {
		return 0, false
	}
	idx := 0
	for _, ch := range key {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		idx = idx*10 + int(ch-'0')
		// Check for overflow (max array index is 2^32 - 2)
		if idx > 4294967294 {
			return 0, false
		}
	}
	return idx, true
}

// intToString converts an int to string without importing strconv
func intToString(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// sortInts sorts a slice of ints in ascending order (simple insertion sort for small slices)
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// Get looks up a property by name, walking the prototype chain if necessary.
func (o *PlainObject) Get(name string) (Value, bool) {
	// Check own properties first
	if value, exists := o.GetOwn(name); exists {
		return value, true
	}

	// Walk prototype chain
	current := o.prototype
	for current.typ != TypeNull && current.typ != TypeUndefined {
		if current.IsObject() {
			if current.typ == TypeObject {
				proto := current.AsPlainObject()
				if value, exists := proto.GetOwn(name); exists {
					return value, true
				}
				current = proto.prototype
			} else {
				dict := current.AsDictObject()
				if value, exists := dict.GetOwn(name); exists {
					return value, true
				}
				current = dict.prototype
			}
		} else {
			break
		}
	}

	return Undefined, false
}

// Has reports whether a property with the given name exists (own or inherited).
func (o *PlainObject) Has(name string) bool {
	_, exists := o.Get(name)
	return exists
}

// GetPrototype returns the object's prototype.
func (o *PlainObject) GetPrototype() Value {
	return o.prototype
}

// SetPrototype sets the object's prototype.
// Returns true if successful, false if the operation failed (e.g. object is non-extensible)
func (o *PlainObject) SetPrototype(proto Value) bool {
	current := o.prototype
	if proto.Is(current) {
		return true
	}
	if !o.extensible {
		return false
	}
	o.prototype = proto
	return true
}

// IsExtensible returns whether new properties can be added to this object
func (o *PlainObject) IsExtensible() bool {
	return o.extensible
}

// SetExtensible sets the extensible flag for this object
// Per ECMAScript spec, once set to false, it cannot be set back to true
func (o *PlainObject) SetExtensible(extensible bool) {
	if !extensible {
		o.extensible = false
	}
	// Silently ignore attempts to set extensible back to true
}

type DictObject struct {
	Object
	prototype  Value
	properties map[string]Value
	// Extensible flag - when false, no new properties can be added
	extensible bool
}

// GetOwn looks up a direct property by name. Returns (value, true) if present.
func (d *DictObject) GetOwn(name string) (Value, bool) {
	v, ok := d.properties[name]
	if !ok {
		return Undefined, false
	}
	return v, true
}

// GetOwnPropertyDescriptor for DictObject returns a fully-permissive data
// descriptor if present, the absent sentinel otherwise.
func (d *DictObject) GetOwnPropertyDescriptor(vmctx *VM, name string) *PropertyDescriptor {
	if v, ok := d.properties[name]; ok {
		return NewDataDescriptor(v, true, true, true)
	}
	return vmctx.Descriptors().Absent()
}

// SetOwn sets or defines an own property.
func (d *DictObject) SetOwn(name string, v Value) {
	if _, exists := d.properties[name]; !exists && !d.extensible {
		return
	}
	d.properties[name] = v
}

// HasOwn reports whether an own property with the given name exists.
func (d *DictObject) HasOwn(name string) bool {
	_, ok := d.properties[name]
	return ok
}

// DeleteOwn deletes an own property. Returns true if deleted.
func (d *DictObject) DeleteOwn(name string) bool {
	if _, ok := d.properties[name]; ok {
		delete(d.properties, name)
		return true
	}
	return false
}

// OwnKeys returns the sorted list of own property names.
func (d *DictObject) OwnKeys() []string {
	keys := make([]string, 0, len(d.properties))
	for k := range d.properties {
		keys = append(keys, k)
	}
	// sort for deterministic order
	sort.Strings(keys)
	return keys
}

// OwnPropertyNames returns the sorted list of own property names (alias for OwnKeys as DictObject has no non-enumerable props).
func (d *DictObject) OwnPropertyNames() []string {
	return d.OwnKeys()
}

// IsExtensible returns whether new properties can be added to this object
func (d *DictObject) IsExtensible() bool {
	return d.extensible
}

// SetExtensible sets the extensible flag for this object
func (d *DictObject) SetExtensible(extensible bool) {
	if !extensible {
		d.extensible = false
	}
}

// GetPrototype returns the object's prototype.
func (d *DictObject) GetPrototype() Value {
	return d.prototype
}

// SetPrototype sets the object's prototype.
func (d *DictObject) SetPrototype(proto Value) bool {
	current := d.prototype
	if proto.Is(current) {
		return true
	}
	if !d.extensible {
		return false
	}
	d.prototype = proto
	return true
}

// Get looks up a property by name, walking the prototype chain if necessary.
func (d *DictObject) Get(name string) (Value, bool) {
	// Check own properties first
	if value, exists := d.GetOwn(name); exists {
		return value, true
	}

	// Walk prototype chain
	current := d.prototype
	for current.typ != TypeNull && current.typ != TypeUndefined {
		if current.IsObject() {
			if current.typ == TypeObject {
				proto := current.AsPlainObject()
				if value, exists := proto.GetOwn(name); exists {
					return value, true
				}
				current = proto.prototype
			} else {
				dict := current.AsDictObject()
				if value, exists := dict.GetOwn(name); exists {
					return value, true
				}
				current = dict.prototype
			}
		} else {
			break
		}
	}

	return Undefined, false
}

// Has reports whether a property with the given name exists (own or inherited).
func (d *DictObject) Has(name string) bool {
	_, exists := d.Get(name)
	return exists
}

// Define the shared default prototype for plain objects
var DefaultObjectPrototype Value
var RootShape *Shape

// Initialize the DefaultObjectPrototype once at package initialization
func init() {
	// Initialize RootShape first
	RootShape = &Shape{
		fields:      []Field{},
		transitions: make(map[string]*Shape),
	}
	// The default prototype is an object whose own prototype is Null.
	protoObj := &PlainObject{prototype: Null, shape: RootShape}
	DefaultObjectPrototype = Value{typ: TypeObject, obj: unsafe.Pointer(protoObj)}
}

func NewObject(proto Value) Value {
	// Create a new PlainObject and set its prototype to the shared DefaultObjectPrototype
	prototype := DefaultObjectPrototype
	if proto.IsObject() || proto.IsNull() {
		prototype = proto
	}
	plainObj := &PlainObject{prototype: prototype, shape: RootShape, extensible: true}
	return Value{typ: TypeObject, obj: unsafe.Pointer(plainObj)}
}

func NewDictObject(proto Value) Value {
	prototype := DefaultObjectPrototype
	if proto.IsObject() || proto.IsNull() {
		prototype = proto
	}
	dictObj := &DictObject{prototype: prototype, properties: make(map[string]Value), extensible: true}
	return Value{typ: TypeDictObject, obj: unsafe.Pointer(dictObj)}
}

// NewValueFromPlainObject wraps an existing PlainObject in a Value.
func NewValueFromPlainObject(po *PlainObject) Value {
	return Value{typ: TypeObject, obj: unsafe.Pointer(po)}
}
